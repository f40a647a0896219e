package services

import "github.com/soaringjerry/panelstats/internal/models"

// SurveyStore is the read surface the survey queries need.
type SurveyStore interface {
	AllMembers() []models.Member
	AllSurveys() []models.Survey
	AllParticipations() []models.Participation
	MemberByID(id int) (models.Member, bool)
	SurveyByID(id int) (models.Survey, bool)
}

type MemberStore interface {
	AllMembers() []models.Member
	MemberByID(id int) (models.Member, bool)
}
