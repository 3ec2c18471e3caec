package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ─── PYROSCOPE CLIENT ─────────────────────────────────────────────────────────

// LabelValues lists the values the profiling backend knows for one label.
// An empty label defaults to service_name, the usual discovery case.
func (c *Client) LabelValues(ctx context.Context, baseURL, label string) []string {
	if label == "" {
		label = "service_name"
	}
	body, _ := json.Marshal(map[string]string{"name": label})
	jr, ok := c.fetchJSON(ctx, baseURL+"/querier.v1.QuerierService/LabelValues", "POST", body,
		map[string]string{"Content-Type": "application/json"})
	if !ok {
		return nil
	}
	names, ok := jr["names"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s, ok := n.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Render fetches a flamegraph render over [now - timeRange, now] and returns
// the raw decoded response. An empty timeRange means "1h". The second return
// is false when the fetch failed; there are no retries.
func (c *Client) Render(ctx context.Context, baseURL, profileID, service, timeRange string) (map[string]interface{}, bool) {
	if timeRange == "" {
		timeRange = "1h"
	}
	q := fmt.Sprintf(`%s{service_name="%s"}`, profileID, service)
	u := fmt.Sprintf("%s/pyroscope/render?query=%s&from=now-%s&until=now&format=json",
		baseURL, url.QueryEscape(q), timeRange)
	return c.fetchJSON(ctx, u, "GET", nil, nil)
}

// TopFunctions returns the top n functions by aggregate self-time for a
// service/profile over the default 1h window. Every failure path, from a
// dead backend to an empty profile, degrades to an empty slice.
func (c *Client) TopFunctions(ctx context.Context, baseURL, service, profileID string, n int) []TopFunction {
	jr, ok := c.Render(ctx, baseURL, profileID, service, "")
	if !ok {
		return nil
	}
	return FlamebearerFrom(jr).Top(n)
}
