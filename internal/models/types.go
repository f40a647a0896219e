package models

// Well-known status ids. The status file is data, but point eligibility and
// the statistics only care about these identities.
const (
	StatusNotAsked  = 1
	StatusRejected  = 2
	StatusFiltered  = 3
	StatusCompleted = 4
)

type Member struct {
	ID       int    `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

type Survey struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	ExpectedCompletes int    `json:"expectedCompletes"`
	CompletionPoints  int    `json:"completionPoints"`
	FilteredPoints    int    `json:"filteredPoints"`
}

type Status struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Is compares by id so that statuses decoded from different rows (or built
// by hand in tests) still match.
func (s Status) Is(id int) bool { return s.ID == id }

type Participation struct {
	MemberID int    `json:"memberId"`
	SurveyID int    `json:"surveyId"`
	Status   Status `json:"status"`
	Length   int    `json:"length"`
}

// EligibleForPoints reports whether the participation earns the member any
// points: only FILTERED and COMPLETED outcomes do.
func (p Participation) EligibleForPoints() bool {
	return p.Status.Is(StatusFiltered) || p.Status.Is(StatusCompleted)
}

// Points returns the reward for this participation in survey s.
func (p Participation) Points(s Survey) int {
	switch {
	case p.Status.Is(StatusCompleted):
		return s.CompletionPoints
	case p.Status.Is(StatusFiltered):
		return s.FilteredPoints
	}
	return 0
}

type SurveyStatistics struct {
	SurveyID                     int     `json:"surveyId"`
	SurveyName                   string  `json:"surveyName"`
	NumberOfCompletes            int     `json:"numberOfCompletes"`
	NumberOfFilteredParticipants int     `json:"numberOfFilteredParticipants"`
	NumberOfRejectedParticipants int     `json:"numberOfRejectedParticipants"`
	AverageLengthOfTime          float64 `json:"averageLengthOfTime"`
}
