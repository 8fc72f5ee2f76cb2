// Package httptransport provides a custom http transport implementation.
package httptransport

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
)

// LoggedTransport adds request slog logging.
//
// Responses with status code below 400 are logged with INFO level.
// Responses with status code of 400 or higher are logged with WARNING level.
// When DEBUG logging is enabled, it will also log details of request and
// response including headers. Binary bodies (e.g. tile images) are logged
// as a byte count only.
type LoggedTransport struct {
	// Base is the wrapped transport. The default transport is used when nil.
	Base http.RoundTripper
}

func (t LoggedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	isDebug := logRequest(req)
	resp, err := base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	logResponse(isDebug, resp, req)
	return resp, err
}

func logRequest(req *http.Request) bool {
	isDebug := slog.Default().Enabled(context.Background(), slog.LevelDebug)
	if isDebug {
		slog.Debug("HTTP request", "method", req.Method, "url", req.URL, "header", req.Header)
	}
	return isDebug
}

func logResponse(isDebug bool, resp *http.Response, req *http.Request) {
	if isDebug {
		slog.Debug(
			"HTTP response",
			"method", req.Method,
			"url", req.URL,
			"status", resp.StatusCode,
			"header", resp.Header,
			"body", describeBody(resp),
		)
	}
	var level slog.Level
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	} else {
		level = slog.LevelInfo
	}
	slog.Log(
		context.Background(),
		level,
		"HTTP response",
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode,
	)
}

// describeBody returns a loggable rendition of a response body and leaves
// the body readable for the caller.
func describeBody(resp *http.Response) any {
	if resp.Body == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	resp.Body = io.NopCloser(bytes.NewBuffer(body))
	if ct := resp.Header.Get("Content-Type"); ct == "image/png" {
		return len(body)
	}
	return string(body)
}
