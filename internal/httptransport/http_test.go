package httptransport_test

import (
	"bytes"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quetzalmap/quetzalmap/internal/httptransport"
)

func TestLoggedTransport(t *testing.T) {
	t.Run("should pass through the response unchanged", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`orange`))
		}))
		defer server.Close()
		client := &http.Client{Transport: httptransport.LoggedTransport{}}
		// when
		resp, err := client.Get(server.URL)
		// then
		if assert.NoError(t, err) {
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			assert.NoError(t, err)
			assert.Equal(t, "orange", string(body))
		}
	})
	t.Run("should log an error response with warning level", func(t *testing.T) {
		// given
		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)
		slog.SetLogLoggerLevel(slog.LevelWarn)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer server.Close()
		client := &http.Client{Transport: httptransport.LoggedTransport{}}
		// when
		resp, err := client.Get(server.URL)
		// then
		if assert.NoError(t, err) {
			resp.Body.Close()
			assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
			assert.Contains(t, buf.String(), "WARN")
			assert.Contains(t, buf.String(), "status=502")
		}
	})
}
