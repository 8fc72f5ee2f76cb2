// Package stream maintains the persistent event stream connection to the
// QuetzalMap backend.
//
// The client decodes the fixed event vocabulary into typed events, appends
// every successfully decoded event to an append-only log and emits it on a
// signal. A stream that ends, whether through a fault or a clean server-side
// close, is resubscribed until Disconnect is called.
package stream

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maniartech/signals"
	"github.com/r3labs/sse/v2"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

// Status is the observable connection state of the stream client.
type Status uint

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusError
	StatusClosed
)

// reconnectDelay is the pause between a stream end and the next subscribe
// attempt. The transport backs off between attempts within one subscribe.
const reconnectDelay = time.Second

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	case StatusClosed:
		return "closed"
	}
	return "unknown"
}

// Client consumes the backend's /events stream.
//
// StatusChanged and EventReceived are synchronous signals: listeners run on
// the delivery goroutine in arrival order, which preserves the single-writer
// model of the stores.
type Client struct {
	StatusChanged signals.Signal[Status]
	EventReceived signals.Signal[qmap.Event]

	url    string
	cancel context.CancelFunc
	done   chan struct{}

	mu           sync.RWMutex
	status       Status
	connectionID int
	events       []qmap.Event
}

// New returns a new stream client for an events URL. The connection is not
// opened until Connect is called.
func New(url string) *Client {
	return &Client{
		StatusChanged: signals.NewSync[Status](),
		EventReceived: signals.NewSync[qmap.Event](),
		url:           url,
		status:        StatusDisconnected,
	}
}

// Connect opens the persistent connection and returns immediately. Events
// are delivered on a background goroutine, and a stream that ends is
// resubscribed until Disconnect is called. Calling Connect on a client that
// is not disconnected is a no-op.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.status != StatusDisconnected && c.status != StatusClosed {
		c.mu.Unlock()
		return
	}
	c.status = StatusConnecting
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()
	c.StatusChanged.Emit(ctx, StatusConnecting)

	sc := sse.NewClient(c.url)
	sc.OnConnect(func(_ *sse.Client) {
		slog.Info("Event stream connected", "url", c.url)
		c.setStatus(StatusConnected)
	})
	sc.OnDisconnect(func(_ *sse.Client) {
		slog.Warn("Event stream disconnected", "url", c.url)
		c.setStatus(StatusError)
	})

	go func() {
		defer close(c.done)
		for {
			err := sc.SubscribeRawWithContext(ctx, c.handle)
			if ctx.Err() != nil {
				return
			}
			// the transport reports a clean server-side close as a normal end
			if err != nil {
				slog.Error("Event stream ended", "url", c.url, "error", err)
			} else {
				slog.Warn("Event stream closed by server", "url", c.url)
			}
			c.setStatus(StatusError)
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
			c.setStatus(StatusConnecting)
		}
	}()
}

// Disconnect tears down the connection and waits for the delivery goroutine
// to exit. It is safe to call at any time, including before the connection
// ever opened, and never leaks the transport.
func (c *Client) Disconnect() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	c.setStatus(StatusClosed)
}

// Status returns the current connection status.
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// ConnectionID returns the id the server assigned to this connection with
// its "connected" event, or 0 when none was received yet.
func (c *Client) ConnectionID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connectionID
}

// Events returns a copy of the delivered-event log in arrival order. The
// log only ever grows for the lifetime of the client.
func (c *Client) Events() []qmap.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	events := make([]qmap.Event, len(c.events))
	copy(events, c.events)
	return events
}

// EventCount returns the length of the delivered-event log.
func (c *Client) EventCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

func (c *Client) setStatus(status Status) {
	c.mu.Lock()
	changed := c.status != status
	c.status = status
	c.mu.Unlock()
	if changed {
		c.StatusChanged.Emit(context.Background(), status)
	}
}

// handle processes one raw server-sent event. Unknown kinds are ignored and
// malformed payloads are dropped; neither stops the stream.
func (c *Client) handle(msg *sse.Event) {
	if len(msg.Event) == 0 && len(msg.Data) == 0 {
		return // keepalive
	}
	kind := qmap.EventKind(msg.Event)
	ev, known, err := qmap.DecodeEvent(kind, msg.Data)
	if !known {
		slog.Debug("Ignoring unknown event kind", "kind", kind)
		return
	}
	if err != nil {
		slog.Warn("Dropping malformed event", "kind", kind, "error", err)
		return
	}
	c.mu.Lock()
	if con, ok := ev.Payload.(*qmap.Connected); ok {
		c.connectionID = con.ID
	}
	c.events = append(c.events, ev)
	c.mu.Unlock()
	c.EventReceived.Emit(context.Background(), ev)
}
