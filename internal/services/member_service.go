package services

import (
	"fmt"

	"github.com/soaringjerry/panelstats/internal/models"
)

type MemberService struct {
	store   MemberStore
	surveys *SurveyService
}

func NewMemberService(store MemberStore, surveys *SurveyService) *MemberService {
	return &MemberService{store: store, surveys: surveys}
}

func (s *MemberService) AllMembers() []models.Member {
	return s.store.AllMembers()
}

func (s *MemberService) MemberByID(id int) (models.Member, error) {
	m, ok := s.store.MemberByID(id)
	if !ok {
		return models.Member{}, NewNotFoundError(fmt.Sprintf("member %d not found", id))
	}
	return m, nil
}

func (s *MemberService) ActiveMembers() []models.Member {
	out := []models.Member{}
	for _, m := range s.store.AllMembers() {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

func (s *MemberService) SurveysCompletedBy(memberID int) []models.Survey {
	return s.surveys.SurveysCompletedBy(memberID)
}

func (s *MemberService) PointsCollectedBy(memberID int) map[int]int {
	return s.surveys.PointsCollectedBy(memberID)
}
