package query

import "sort"

// ─── SERVICE NAME MAPPING ─────────────────────────────────────────────────────

// SvcMap translates container names to the application names the profiling
// backend indexes by. Fixed at startup, never mutated.
var SvcMap = map[string]string{
	"api-gateway":          "bank-api-gateway",
	"order-service":        "bank-order-service",
	"payment-service":      "bank-payment-service",
	"fraud-service":        "bank-fraud-service",
	"account-service":      "bank-account-service",
	"loan-service":         "bank-loan-service",
	"notification-service": "bank-notification-service",
	"stream-service":       "bank-stream-service",
}

// ReverseMap is the inverse lookup, application name back to container name.
var ReverseMap = map[string]string{}

func init() {
	for k, v := range SvcMap {
		ReverseMap[v] = k
	}
}

// AppName maps a container name to its profiling application name.
// Unmapped names pass through unchanged.
func AppName(container string) string {
	if app, ok := SvcMap[container]; ok {
		return app
	}
	return container
}

// ContainerName maps a profiling application name back to its container name.
// Unmapped names pass through unchanged.
func ContainerName(app string) string {
	if c, ok := ReverseMap[app]; ok {
		return c
	}
	return app
}

// Services returns every known container name, sorted for stable iteration.
func Services() []string {
	out := make([]string, 0, len(SvcMap))
	for k := range SvcMap {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
