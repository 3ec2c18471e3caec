package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func promServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestInstant(t *testing.T) {
	srv := promServer(t, `{
		"status": "success",
		"data": {
			"resultType": "vector",
			"result": [
				{"metric": {"instance": "order-service:9464"}, "value": [1700000000, "1.5"]},
				{"metric": {"instance": "payment-service:9464"}, "value": [1700000000, "0.25"]},
				{"metric": {"instance": "fraud-service:9464"}, "value": [1700000000, "not-a-number"]},
				{"metric": {}, "value": [1700000000, "3"]}
			]
		}
	}`)
	defer srv.Close()

	c := New()
	got := c.Instant(context.Background(), srv.URL, "up")
	want := map[string]float64{
		"order-service":   1.5,
		"payment-service": 0.25,
		"unknown":         3,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Instant = %v; want %v", got, want)
	}
}

func TestInstant_FetchFailure(t *testing.T) {
	srv := promServer(t, "")
	url := srv.URL
	srv.Close()

	c := New()
	if got := c.Instant(context.Background(), url, "up"); len(got) != 0 {
		t.Errorf("Instant = %v; want empty", got)
	}
}

func TestQuery_SendsEscapedExpr(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"status":"success","data":{"resultType":"vector","result":[]}}`))
	}))
	defer srv.Close()

	c := New()
	expr := `rate(http_requests_total{job="api"}[5m])`
	c.Query(context.Background(), srv.URL, expr)
	if gotQuery != expr {
		t.Errorf("upstream query = %q; want %q", gotQuery, expr)
	}
}

func TestQuery_MalformedEnvelope(t *testing.T) {
	cases := []struct{ name, body string }{
		{"data wrong type", `{"status":"success","data":[1,2]}`},
		{"result wrong type", `{"status":"success","data":{"result":"nope"}}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := promServer(t, tc.body)
			defer srv.Close()
			c := New()
			if got := c.Query(context.Background(), srv.URL, "up"); len(got) != 0 {
				t.Errorf("Query = %v; want empty", got)
			}
		})
	}
}

func TestAlerts_KeepsOnlyFiring(t *testing.T) {
	srv := promServer(t, `{
		"status": "success",
		"data": {
			"alerts": [
				{"labels": {"alertname": "HighCPU"}, "state": "firing"},
				{"labels": {"alertname": "SlowDisk"}, "state": "pending"},
				{"labels": {"alertname": "HighHeap"}, "state": "firing"},
				{"labels": {"alertname": "Odd"}, "state": "inactive"}
			]
		}
	}`)
	defer srv.Close()

	c := New()
	got := c.Alerts(context.Background(), srv.URL)
	if len(got) != 2 {
		t.Fatalf("got %d alerts; want 2", len(got))
	}
	for _, a := range got {
		if a["state"] != "firing" {
			t.Errorf("non-firing alert leaked through: %v", a)
		}
	}
}

func TestAlerts_FetchFailure(t *testing.T) {
	srv := promServer(t, "")
	url := srv.URL
	srv.Close()

	c := New()
	if got := c.Alerts(context.Background(), url); len(got) != 0 {
		t.Errorf("Alerts = %v; want empty", got)
	}
}
