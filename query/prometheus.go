package query

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
)

// ─── PROMETHEUS CLIENT ────────────────────────────────────────────────────────

// Query runs an instant PromQL query and returns the raw result vector.
// Any failure, including a malformed envelope, yields an empty slice.
func (c *Client) Query(ctx context.Context, baseURL, expr string) []map[string]interface{} {
	u := baseURL + "/api/v1/query?query=" + url.QueryEscape(expr)
	jr, ok := c.fetchJSON(ctx, u, "GET", nil, nil)
	if !ok {
		return nil
	}
	data, ok := jr["data"].(map[string]interface{})
	if !ok {
		return nil
	}
	results, ok := data["result"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(results))
	for _, it := range results {
		if s, ok := it.(map[string]interface{}); ok {
			out = append(out, s)
		}
	}
	if DebugMode {
		log.Printf("[DEBUG] Query %q: %d series", expr, len(out))
	}
	return out
}

// Instant runs a PromQL query and returns {instance: value}, with the
// instance label truncated at the first colon so it matches the container
// name. Unparsable samples are skipped with a warning.
func (c *Client) Instant(ctx context.Context, baseURL, expr string) map[string]float64 {
	out := map[string]float64{}
	for _, r := range c.Query(ctx, baseURL, expr) {
		inst := "unknown"
		if m, ok := r["metric"].(map[string]interface{}); ok {
			if s, ok := m["instance"].(string); ok {
				inst = s
			}
		}
		inst = strings.SplitN(inst, ":", 2)[0]

		pair, ok := r["value"].([]interface{})
		if !ok || len(pair) < 2 {
			log.Printf("Bad value in Prometheus result for %s", inst)
			continue
		}
		v, err := strconv.ParseFloat(fmt.Sprintf("%v", pair[1]), 64)
		if err != nil {
			log.Printf("Bad value in Prometheus result for %s", inst)
			continue
		}
		out[inst] = v
	}
	return out
}

// Alerts returns the currently firing alerts; every other state is dropped.
func (c *Client) Alerts(ctx context.Context, baseURL string) []map[string]interface{} {
	jr, ok := c.fetchJSON(ctx, baseURL+"/api/v1/alerts", "GET", nil, nil)
	if !ok {
		return nil
	}
	data, ok := jr["data"].(map[string]interface{})
	if !ok {
		return nil
	}
	alerts, ok := data["alerts"].([]interface{})
	if !ok {
		return nil
	}
	firing := []map[string]interface{}{}
	for _, it := range alerts {
		a, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		if a["state"] == "firing" {
			firing = append(firing, a)
		}
	}
	return firing
}
