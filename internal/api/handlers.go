package api

import (
	"net/http"

	"github.com/soaringjerry/panelstats/internal/services"
)

// GET /api/members
func (rt *Router) handleMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.members.AllMembers())
}

// GET /api/members/active
func (rt *Router) handleActiveMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rt.members.ActiveMembers())
}

// GET /api/members/{id}
func (rt *Router) handleMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	m, err := rt.members.MemberByID(id)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// GET /api/members/{memberId}/completed-surveys
// GET /api/surveys/completed-by/{memberId}
func (rt *Router) handleCompletedSurveys(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "memberId")
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.surveys.SurveysCompletedBy(id))
}

// GET /api/members/{memberId}/points[?format=csv]
// GET /api/surveys/points-collected-by/{memberId}[?format=csv]
func (rt *Router) handlePoints(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "memberId")
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	asCSV, err := wantCSV(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	points := rt.surveys.PointsCollectedBy(id)
	if !asCSV {
		writeJSON(w, http.StatusOK, points)
		return
	}
	b, err := services.ExportPointsCSV(points)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeCSV(w, "points.csv", b)
}

// GET /api/surveys/{surveyId}/respondents
func (rt *Router) handleRespondents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "surveyId")
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.surveys.RespondentsWhoCompleted(id))
}

// GET /api/surveys/{surveyId}/invitable-members
func (rt *Router) handleInvitable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "surveyId")
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.surveys.InvitableMembersFor(id))
}

// GET /api/surveys/statistics[?format=csv]
func (rt *Router) handleStatistics(w http.ResponseWriter, r *http.Request) {
	asCSV, err := wantCSV(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	stats := rt.surveys.Statistics()
	if !asCSV {
		writeJSON(w, http.StatusOK, stats)
		return
	}
	b, err := services.ExportStatisticsCSV(stats)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeCSV(w, "statistics.csv", b)
}
