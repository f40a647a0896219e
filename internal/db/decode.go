package db

import "github.com/soaringjerry/panelstats/internal/models"

// Column headers of the four source files.
const (
	ColMemberID          = "Member Id"
	ColFullName          = "Full name"
	ColEmail             = "E-mail address"
	ColIsActive          = "Is Active"
	ColSurveyID          = "Survey Id"
	ColName              = "Name"
	ColExpectedCompletes = "Expected completes"
	ColCompletionPoints  = "Completion points"
	ColFilteredPoints    = "Filtered points"
	ColStatusID          = "Status Id"
	ColStatus            = "Status"
	ColLength            = "Length"
)

const activeMarker = "1"

const (
	msgMemberIDEmpty          = "Member Id not found in record"
	msgFullNameEmpty          = "Full name not found in record"
	msgEmailEmpty             = "Email address not found in record"
	msgIsActiveEmpty          = "Is Active not found in record"
	msgSurveyIDEmpty          = "Survey Id cannot be empty"
	msgSurveyNameEmpty        = "Survey name cannot be empty"
	msgExpectedCompletesEmpty = "Expected completes cannot be empty"
	msgCompletionPointsEmpty  = "Completion points cannot be empty"
	msgFilteredPointsEmpty    = "Filtered points cannot be empty"
	msgStatusIDEmpty          = "Status Id cannot be empty"
	msgStatusNameEmpty        = "Status name cannot be empty"
	msgStatusEmpty            = "Status cannot be empty"
)

func DecodeMember(r Record) (models.Member, error) {
	var m models.Member
	var err error
	if m.ID, err = r.requireInt(ColMemberID, msgMemberIDEmpty); err != nil {
		return models.Member{}, err
	}
	if m.FullName, err = r.requireString(ColFullName, msgFullNameEmpty); err != nil {
		return models.Member{}, err
	}
	if m.Email, err = r.requireString(ColEmail, msgEmailEmpty); err != nil {
		return models.Member{}, err
	}
	active, err := r.requireString(ColIsActive, msgIsActiveEmpty)
	if err != nil {
		return models.Member{}, err
	}
	m.Active = active == activeMarker
	return m, nil
}

func DecodeSurvey(r Record) (models.Survey, error) {
	var s models.Survey
	var err error
	if s.ID, err = r.requireInt(ColSurveyID, msgSurveyIDEmpty); err != nil {
		return models.Survey{}, err
	}
	if s.Name, err = r.requireString(ColName, msgSurveyNameEmpty); err != nil {
		return models.Survey{}, err
	}
	if s.ExpectedCompletes, err = r.requireInt(ColExpectedCompletes, msgExpectedCompletesEmpty); err != nil {
		return models.Survey{}, err
	}
	if s.CompletionPoints, err = r.requireInt(ColCompletionPoints, msgCompletionPointsEmpty); err != nil {
		return models.Survey{}, err
	}
	if s.FilteredPoints, err = r.requireInt(ColFilteredPoints, msgFilteredPointsEmpty); err != nil {
		return models.Survey{}, err
	}
	return s, nil
}

func DecodeStatus(r Record) (models.Status, error) {
	var s models.Status
	var err error
	if s.ID, err = r.requireInt(ColStatusID, msgStatusIDEmpty); err != nil {
		return models.Status{}, err
	}
	if s.Name, err = r.requireString(ColName, msgStatusNameEmpty); err != nil {
		return models.Status{}, err
	}
	return s, nil
}

// DecodeParticipation resolves the Status column against statuses, which
// must already hold every status id the participation file refers to.
func DecodeParticipation(r Record, statuses map[int]models.Status) (models.Participation, error) {
	var p models.Participation
	var err error
	if p.MemberID, err = r.requireInt(ColMemberID, msgMemberIDEmpty); err != nil {
		return models.Participation{}, err
	}
	if p.SurveyID, err = r.requireInt(ColSurveyID, msgSurveyIDEmpty); err != nil {
		return models.Participation{}, err
	}
	if _, ok := r.String(ColStatus); !ok {
		return models.Participation{}, &MissingFieldError{Field: ColStatus, Message: msgStatusEmpty}
	}
	statusID, err := r.requireInt(ColStatus, msgStatusEmpty)
	if err != nil {
		return models.Participation{}, err
	}
	st, ok := statuses[statusID]
	if !ok {
		return models.Participation{}, &StatusNotFoundError{ID: statusID}
	}
	p.Status = st
	length, _, err := r.Int(ColLength)
	if err != nil {
		return models.Participation{}, err
	}
	p.Length = length
	return p, nil
}
