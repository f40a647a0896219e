package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soaringjerry/panelstats/internal/middleware"
	"github.com/soaringjerry/panelstats/internal/services"
	"github.com/soaringjerry/panelstats/internal/utils"
)

// BuildInfo is reported by /health and /version.
type BuildInfo struct {
	Commit    string
	BuildTime string
}

type Router struct {
	store   Store
	members *services.MemberService
	surveys *services.SurveyService
	build   BuildInfo
	logger  *slog.Logger
}

func NewRouter(store Store, build BuildInfo, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	surveys := services.NewSurveyService(store)
	return &Router{
		store:   store,
		members: services.NewMemberService(store, surveys),
		surveys: surveys,
		build:   build,
		logger:  logger,
	}
}

func (rt *Router) Register(r chi.Router) {
	r.NotFound(rt.handleNotFound)

	r.With(middleware.NoStore).Get("/health", rt.handleHealth)
	r.Get("/version", rt.handleVersion)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SnapshotETag(rt.store.SnapshotID))

		r.Route("/members", func(r chi.Router) {
			r.Get("/", rt.handleMembers)
			r.Get("/active", rt.handleActiveMembers)
			r.Get("/{id}", rt.handleMember)
			r.Get("/{memberId}/completed-surveys", rt.handleCompletedSurveys)
			r.Get("/{memberId}/points", rt.handlePoints)
		})

		r.Route("/surveys", func(r chi.Router) {
			r.Get("/statistics", rt.handleStatistics)
			r.Get("/completed-by/{memberId}", rt.handleCompletedSurveys)
			r.Get("/points-collected-by/{memberId}", rt.handlePoints)
			r.Get("/{surveyId}/respondents", rt.handleRespondents)
			r.Get("/{surveyId}/invitable-members", rt.handleInvitable)
		})
	})
}

// GET /health
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	body := map[string]any{
		"ok":         true,
		"name":       "panelstats",
		"locale":     locale,
		"msg":        utils.T(locale, "health.ok"),
		"commit":     rt.build.Commit,
		"build_time": rt.build.BuildTime,
	}
	if !rt.store.Loaded() {
		body["ok"] = false
		body["msg"] = utils.T(locale, "health.not_ready")
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["snapshot_id"] = rt.store.SnapshotID()
	body["loaded_at"] = rt.store.LoadedAt().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, body)
}

// GET /version
func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"commit":     rt.build.Commit,
		"build_time": rt.build.BuildTime,
	})
}

func (rt *Router) handleNotFound(w http.ResponseWriter, r *http.Request) {
	rt.writeError(w, r, services.NewNotFoundError("no route for "+r.URL.Path))
}
