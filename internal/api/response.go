package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soaringjerry/panelstats/internal/middleware"
	"github.com/soaringjerry/panelstats/internal/services"
	"github.com/soaringjerry/panelstats/internal/utils"
)

type errorBody struct {
	Error   services.ErrorCode `json:"error"`
	Message string             `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCSV(w http.ResponseWriter, filename string, b []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// writeError renders err as {"error": code, "message": text} in the request
// locale. Errors that are not ServiceErrors are logged and reported as 500.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := middleware.LocaleFromContext(r.Context())
	se, ok := services.AsServiceError(err)
	if !ok {
		rt.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal", Message: utils.T(locale, "error.internal")})
		return
	}
	switch se.Code {
	case services.ErrorNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Error: se.Code, Message: utils.T(locale, "error.not_found")})
	case services.ErrorInvalid:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: se.Code, Message: utils.T(locale, se.Message)})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: se.Code, Message: utils.T(locale, "error.internal")})
	}
}

// pathID parses the named URL parameter as an integer id.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, services.NewInvalidError("error.invalid_id")
	}
	return id, nil
}

// wantCSV reports whether ?format=csv was requested. Any format other than
// json or csv is rejected.
func wantCSV(r *http.Request) (bool, error) {
	switch r.URL.Query().Get("format") {
	case "", "json":
		return false, nil
	case "csv":
		return true, nil
	default:
		return false, services.NewInvalidError("error.format")
	}
}
