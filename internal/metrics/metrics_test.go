package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/soaringjerry/panelstats/internal/db"
)

func TestRecordLoad(t *testing.T) {
	m := New()
	m.RecordLoad(db.LoadStats{Members: 6, Surveys: 3, Statuses: 4, Participations: 10, Dangling: 2, Elapsed: time.Second}, nil)

	if got := testutil.ToFloat64(m.records.WithLabelValues("members")); got != 6 {
		t.Fatalf("members gauge = %v", got)
	}
	if got := testutil.ToFloat64(m.dangling); got != 2 {
		t.Fatalf("dangling gauge = %v", got)
	}
	if got := testutil.ToFloat64(m.loadSeconds); got != 1 {
		t.Fatalf("load seconds = %v", got)
	}

	m.RecordLoad(db.LoadStats{}, errors.New("boom"))
	if got := testutil.ToFloat64(m.loadFailures); got != 1 {
		t.Fatalf("load failures = %v", got)
	}
}

func TestObserveRequestAndHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/members/{id}", "GET", 200, 5*time.Millisecond)
	m.ObserveRequest("", "GET", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/members/{id}", "GET", "200")); got != 1 {
		t.Fatalf("request counter = %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Fatalf("unmatched counter = %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "panelstats_http_requests_total") {
		t.Fatalf("exposition missing request counter")
	}
}
