package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/netdraw/pkg/observability"
)

func scrape(t *testing.T, m *Metrics) (int, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(rr, req)
	return rr.Code, rr.Body.String()
}

func TestHandler_nilMetrics(t *testing.T) {
	var m *Metrics
	code, body := scrape(t, m)

	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if !strings.Contains(body, "metrics unavailable") {
		t.Fatalf("expected body to mention metrics unavailable, got %q", body)
	}

	// Hooks on a nil receiver are no-ops.
	m.OnLayoutStart(context.Background(), 3)
	m.OnCacheSet(context.Background(), "document", 10)
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
}

func TestHandler_exposesRegisteredMetrics(t *testing.T) {
	ctx := context.Background()
	m := New()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/render", http.StatusOK, 12*time.Millisecond)
	m.OnLayoutStart(ctx, 8)
	m.OnLayoutComplete(ctx, 8, time.Millisecond, nil)
	m.OnRenderComplete(ctx, []string{"drawio"}, time.Millisecond, errors.New("disk full"))
	m.OnFramesResolved(ctx, 2, 10, false)
	m.OnCacheHit(ctx, "document")
	m.OnCacheMiss(ctx, "document")
	m.OnCacheSet(ctx, "document", 512)

	code, body := scrape(t, m)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, body)
	}

	for _, want := range []string{
		`netdraw_http_requests_total{method="POST",path="/api/v1/render",status="200"} 1`,
		`netdraw_stage_duration_seconds_count{stage="layout"} 1`,
		`netdraw_stage_errors_total{stage="render"} 1`,
		`netdraw_layout_nodes_count 1`,
		`netdraw_frame_resolution_unconverged_total 1`,
		`netdraw_cache_events_total{event="hit",key_type="document"} 1`,
		`netdraw_cache_events_total{event="miss",key_type="document"} 1`,
		`netdraw_cache_written_bytes_total 512`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRegister(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	m := New()
	m.Register()
	if observability.Pipeline() != m {
		t.Error("Register should install pipeline hooks")
	}
	if observability.Cache() != m {
		t.Error("Register should install cache hooks")
	}
}
