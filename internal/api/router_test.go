package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soaringjerry/panelstats/data"
	"github.com/soaringjerry/panelstats/internal/db"
	"github.com/soaringjerry/panelstats/internal/middleware"
	"github.com/soaringjerry/panelstats/internal/models"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store := db.NewStore(db.FSSource(data.Sample), nil, nil)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load sample: %v", err)
	}
	r := chi.NewRouter()
	r.Use(middleware.LocaleMiddleware)
	NewRouter(store, BuildInfo{Commit: "abc", BuildTime: "now"}, nil).Register(r)
	return r
}

func get(t *testing.T, h http.Handler, path string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func memberIDs(ms []models.Member) []int {
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMembersRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/api/members")
	if rec.Code != http.StatusOK {
		t.Fatalf("members: %d", rec.Code)
	}
	if got := memberIDs(decode[[]models.Member](t, rec)); !equalInts(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("members = %v", got)
	}

	rec = get(t, h, "/api/members/active")
	if got := memberIDs(decode[[]models.Member](t, rec)); !equalInts(got, []int{1, 2, 4, 5}) {
		t.Fatalf("active members = %v", got)
	}

	rec = get(t, h, "/api/members/3")
	m := decode[models.Member](t, rec)
	if m.ID != 3 || m.FullName != "Aiko Tanaka" || m.Active {
		t.Fatalf("member 3 = %+v", m)
	}
}

func TestMemberNotFoundAndInvalid(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/api/members/99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown member: %d", rec.Code)
	}
	body := decode[errorBody](t, rec)
	if body.Error != "not_found" || body.Message == "" {
		t.Fatalf("error body %+v", body)
	}

	rec = get(t, h, "/api/members/abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-integer id: %d", rec.Code)
	}
	if body := decode[errorBody](t, rec); body.Error != "invalid" || body.Message != "id must be an integer" {
		t.Fatalf("error body %+v", body)
	}

	rec = get(t, h, "/api/surveys/x/respondents", "Accept-Language", "zh")
	if body := decode[errorBody](t, rec); body.Message != "id 必须是整数" {
		t.Fatalf("localized message %q", body.Message)
	}
}

func TestCompletedSurveysBothPaths(t *testing.T) {
	h := newTestHandler(t)
	for _, path := range []string{"/api/members/4/completed-surveys", "/api/surveys/completed-by/4"} {
		rec := get(t, h, path)
		surveys := decode[[]models.Survey](t, rec)
		if len(surveys) != 2 || surveys[0].ID != 2 || surveys[1].ID != 3 {
			t.Fatalf("%s = %+v", path, surveys)
		}
	}

	rec := get(t, h, "/api/members/42/completed-surveys")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("unknown member should yield empty list, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestPoints(t *testing.T) {
	h := newTestHandler(t)
	for _, path := range []string{"/api/members/1/points", "/api/surveys/points-collected-by/1"} {
		rec := get(t, h, path)
		pts := decode[map[string]int](t, rec)
		if len(pts) != 2 || pts["1"] != 10 || pts["2"] != 4 {
			t.Fatalf("%s = %v", path, pts)
		}
	}

	rec := get(t, h, "/api/members/1/points?format=csv")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type %q", ct)
	}
	want := "survey_id,points\n1,10\n2,4\ntotal,14\n"
	if rec.Body.String() != want {
		t.Fatalf("points csv = %q", rec.Body.String())
	}

	rec = get(t, h, "/api/members/1/points?format=xml")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unsupported format: %d", rec.Code)
	}
}

func TestSurveyRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/api/surveys/1/respondents")
	if got := memberIDs(decode[[]models.Member](t, rec)); !equalInts(got, []int{1, 2, 6}) {
		t.Fatalf("respondents = %v", got)
	}

	rec = get(t, h, "/api/surveys/1/invitable-members")
	if got := memberIDs(decode[[]models.Member](t, rec)); !equalInts(got, []int{4, 5}) {
		t.Fatalf("invitable = %v", got)
	}

	rec = get(t, h, "/api/surveys/3/invitable-members")
	if got := memberIDs(decode[[]models.Member](t, rec)); !equalInts(got, []int{2}) {
		t.Fatalf("invitable survey 3 = %v", got)
	}
}

func TestStatistics(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/api/surveys/statistics")
	stats := decode[[]models.SurveyStatistics](t, rec)
	if len(stats) != 3 {
		t.Fatalf("rows = %d", len(stats))
	}
	first := stats[0]
	if first.SurveyID != 1 || first.NumberOfCompletes != 3 || first.NumberOfFilteredParticipants != 1 ||
		first.NumberOfRejectedParticipants != 0 || first.AverageLengthOfTime != 20 {
		t.Fatalf("survey 1 stats = %+v", first)
	}

	rec = get(t, h, "/api/surveys/statistics?format=csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 4 || lines[1] != "1,Grocery Habits 2024,3,1,0,20.00" {
		t.Fatalf("statistics csv = %q", rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "statistics.csv") {
		t.Fatalf("content disposition %q", cd)
	}
}

func TestSnapshotETagOnAPI(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/members")
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing etag")
	}
	rec = get(t, h, "/api/members/active", "If-None-Match", etag)
	if rec.Code != http.StatusNotModified {
		t.Fatalf("conditional request: %d", rec.Code)
	}
}

func TestHealthAndVersion(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/health?lang=zh")
	body := decode[map[string]any](t, rec)
	if body["ok"] != true || body["locale"] != "zh" || body["msg"] != "好的" || body["commit"] != "abc" {
		t.Fatalf("health = %v", body)
	}
	if id, _ := body["snapshot_id"].(string); id == "" {
		t.Fatalf("health missing snapshot id: %v", body)
	}
	if at, _ := body["loaded_at"].(string); at == "" {
		t.Fatalf("health missing loaded_at: %v", body)
	} else if _, err := time.Parse(time.RFC3339, at); err != nil {
		t.Fatalf("loaded_at %q: %v", at, err)
	}

	rec = get(t, h, "/version")
	v := decode[map[string]string](t, rec)
	if v["commit"] != "abc" || v["build_time"] != "now" {
		t.Fatalf("version = %v", v)
	}
}

func TestHealthBeforeLoad(t *testing.T) {
	store := db.NewStore(db.FSSource(data.Sample), nil, nil)
	r := chi.NewRouter()
	NewRouter(store, BuildInfo{}, nil).Register(r)

	rec := get(t, r, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("health before load: %d", rec.Code)
	}
	if body := decode[map[string]any](t, rec); body["ok"] != false {
		t.Fatalf("health before load = %v", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/nothing-here")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: %d", rec.Code)
	}
	if body := decode[errorBody](t, rec); body.Error != "not_found" {
		t.Fatalf("error body %+v", body)
	}
}
