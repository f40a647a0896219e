package services

import "testing"

func TestMemberService(t *testing.T) {
	store := scenarioStore()
	svc := NewMemberService(store, NewSurveyService(store))

	if got := svc.AllMembers(); len(got) != 3 {
		t.Fatalf("expected 3 members, got %d", len(got))
	}
	active := svc.ActiveMembers()
	if len(active) != 2 || active[0].ID != 1 || active[1].ID != 2 {
		t.Fatalf("unexpected active members %+v", active)
	}
	m, err := svc.MemberByID(3)
	if err != nil || m.FullName != "Cy" {
		t.Fatalf("MemberByID(3) = %+v, %v", m, err)
	}
	if got := svc.SurveysCompletedBy(1); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected completed surveys %+v", got)
	}
	if got := svc.PointsCollectedBy(1); got[1] != 10 {
		t.Fatalf("unexpected points %v", got)
	}
}

func TestMemberServiceNotFound(t *testing.T) {
	store := scenarioStore()
	svc := NewMemberService(store, NewSurveyService(store))
	_, err := svc.MemberByID(404)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found service error, got %v", err)
	}
}
