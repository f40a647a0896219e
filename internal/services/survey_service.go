package services

import "github.com/soaringjerry/panelstats/internal/models"

// SurveyService answers the cross-dataset queries. It keeps no state of its
// own; every call is a pure read over the store.
//
// Participations pointing at a member or survey id that is not in the
// corresponding file are left out of join results.
type SurveyService struct {
	store SurveyStore
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{store: store}
}

// RespondentsWhoCompleted lists the members with a COMPLETED participation in
// surveyID, in participation order.
func (s *SurveyService) RespondentsWhoCompleted(surveyID int) []models.Member {
	out := []models.Member{}
	for _, p := range s.store.AllParticipations() {
		if p.SurveyID != surveyID || !p.Status.Is(models.StatusCompleted) {
			continue
		}
		if m, ok := s.store.MemberByID(p.MemberID); ok {
			out = append(out, m)
		}
	}
	return out
}

// SurveysCompletedBy lists the surveys memberID completed, in participation order.
func (s *SurveyService) SurveysCompletedBy(memberID int) []models.Survey {
	out := []models.Survey{}
	for _, p := range s.store.AllParticipations() {
		if p.MemberID != memberID || !p.Status.Is(models.StatusCompleted) {
			continue
		}
		if sv, ok := s.store.SurveyByID(p.SurveyID); ok {
			out = append(out, sv)
		}
	}
	return out
}

// PointsCollectedBy maps survey id to the points memberID earned there. When a
// member has several eligible participations in one survey the last one wins.
func (s *SurveyService) PointsCollectedBy(memberID int) map[int]int {
	out := map[int]int{}
	for _, p := range s.store.AllParticipations() {
		if p.MemberID != memberID || !p.EligibleForPoints() {
			continue
		}
		sv, ok := s.store.SurveyByID(p.SurveyID)
		if !ok {
			continue
		}
		out[sv.ID] = p.Points(sv)
	}
	return out
}

// InvitableMembersFor lists active members with no participation of any
// status in surveyID, in member order.
func (s *SurveyService) InvitableMembersFor(surveyID int) []models.Member {
	participated := map[int]struct{}{}
	for _, p := range s.store.AllParticipations() {
		if p.SurveyID == surveyID {
			participated[p.MemberID] = struct{}{}
		}
	}
	out := []models.Member{}
	for _, m := range s.store.AllMembers() {
		if !m.Active {
			continue
		}
		if _, ok := participated[m.ID]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

type surveyTally struct {
	completes, filtered, rejected int
	completedLength               int
}

// Statistics returns one row per survey, in survey order. The average length
// only covers COMPLETED participations and is 0 when there are none.
func (s *SurveyService) Statistics() []models.SurveyStatistics {
	tallies := map[int]*surveyTally{}
	for _, p := range s.store.AllParticipations() {
		t := tallies[p.SurveyID]
		if t == nil {
			t = &surveyTally{}
			tallies[p.SurveyID] = t
		}
		switch p.Status.ID {
		case models.StatusCompleted:
			t.completes++
			t.completedLength += p.Length
		case models.StatusFiltered:
			t.filtered++
		case models.StatusRejected:
			t.rejected++
		}
	}

	surveys := s.store.AllSurveys()
	out := make([]models.SurveyStatistics, 0, len(surveys))
	for _, sv := range surveys {
		row := models.SurveyStatistics{SurveyID: sv.ID, SurveyName: sv.Name}
		if t := tallies[sv.ID]; t != nil {
			row.NumberOfCompletes = t.completes
			row.NumberOfFilteredParticipants = t.filtered
			row.NumberOfRejectedParticipants = t.rejected
			if t.completes > 0 {
				row.AverageLengthOfTime = float64(t.completedLength) / float64(t.completes)
			}
		}
		out = append(out, row)
	}
	return out
}
