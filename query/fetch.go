// Package query holds the HTTP clients shared by the Pyrotheus diagnostic
// tooling: an instant-query/alert client for Prometheus and a flamegraph
// client for Pyroscope, both built on one resilient JSON fetcher.
//
// Every fetch degrades to an absent result instead of raising: partial
// monitoring data is more useful to a diagnostic report than a crash.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 10 * time.Second

// Client is a handle on the monitoring stack. The zero value is not usable;
// construct with New. Calls hold no shared mutable state beyond the HTTP
// transport and the breaker, so a single Client is safe for concurrent use.
type Client struct {
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

// New builds a Client with the fixed 10-second timeout.
func New() *Client {
	return &Client{
		httpc: &http.Client{Timeout: DefaultTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "monitoring-fetch",
		}),
		tracer: otel.Tracer("github.com/andydixon/pyrotheus/query"),
	}
}

// httpStatusError marks a non-2xx response inside the breaker closure so the
// caller can tell protocol failures from transport ones.
type httpStatusError struct{ code int }

func (e *httpStatusError) Error() string { return fmt.Sprintf("HTTP %d", e.code) }

// ─── RESILIENT FETCH ──────────────────────────────────────────────────────────

// fetchJSON performs one request and decodes the body as a JSON object.
// The second return is false on any failure: bad scheme, open breaker,
// transport error, non-2xx status, or undecodable body. No retries.
func (c *Client) fetchJSON(ctx context.Context, urlStr, method string, body []byte, headers map[string]string) (map[string]interface{}, bool) {
	// Only http/https may leave the process; anything else never dials.
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		log.Printf("Refusing non-HTTP URL: %s", urlStr)
		fetchOutcomes.WithLabelValues("refused_scheme").Inc()
		return nil, false
	}

	ctx, span := c.tracer.Start(ctx, "query.fetch", trace.WithAttributes(
		attribute.String("http.url", urlStr),
		attribute.String("http.method", method),
	))
	defer span.End()

	res, err := c.breaker.Execute(func() (interface{}, error) {
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, urlStr, rdr)
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &httpStatusError{code: resp.StatusCode}
		}
		return b, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		var hs *httpStatusError
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			log.Printf("Breaker open, skipping %s", urlStr)
			fetchOutcomes.WithLabelValues("breaker_open").Inc()
		case errors.As(err, &hs):
			log.Printf("HTTP %d from %s", hs.code, urlStr)
			fetchOutcomes.WithLabelValues("http_error").Inc()
		default:
			log.Printf("Connection failed for %s: %v", urlStr, err)
			fetchOutcomes.WithLabelValues("transport_error").Inc()
		}
		return nil, false
	}
	raw, _ := res.([]byte)

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("Failed to parse response from %s: %v", urlStr, err)
		fetchOutcomes.WithLabelValues("decode_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, false
	}

	fetchOutcomes.WithLabelValues("ok").Inc()
	if DebugMode {
		log.Printf("[DEBUG] fetchJSON: %s %s → %d bytes", method, urlStr, len(raw))
	}
	return out, true
}
