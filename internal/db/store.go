package db

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/soaringjerry/panelstats/internal/models"
)

// LoadStats summarises a completed load.
type LoadStats struct {
	SnapshotID     string
	Members        int
	Surveys        int
	Statuses       int
	Participations int
	// Dangling counts participations whose member or survey id is not in
	// the corresponding file.
	Dangling int
	Elapsed  time.Duration
}

// LoadRecorder receives the outcome of a load, e.g. to export metrics.
type LoadRecorder interface {
	RecordLoad(stats LoadStats, err error)
}

type snapshot struct {
	id             string
	loadedAt       time.Time
	members        []models.Member
	surveys        []models.Survey
	statuses       []models.Status
	participations []models.Participation
	membersByID    map[int]models.Member
	surveysByID    map[int]models.Survey
	statusesByID   map[int]models.Status
}

var emptySnapshot = &snapshot{
	membersByID:  map[int]models.Member{},
	surveysByID:  map[int]models.Survey{},
	statusesByID: map[int]models.Status{},
}

// Store holds the four datasets in memory. It is populated once by Load and
// is read-only afterwards; readers never see a partially built snapshot.
type Store struct {
	src    Source
	logger *slog.Logger
	rec    LoadRecorder

	once    sync.Once
	loadErr error
	snap    atomic.Pointer[snapshot]
}

func NewStore(src Source, logger *slog.Logger, rec LoadRecorder) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{src: src.withDefaults(), logger: logger, rec: rec}
}

// Load reads members, surveys, statuses and participations, in that order.
// Any failure aborts the whole load and nothing is published. Only the first
// call does any work; later calls return its result.
func (s *Store) Load(ctx context.Context) error {
	s.once.Do(func() {
		start := time.Now()
		snap, err := s.build(ctx)
		stats := LoadStats{Elapsed: time.Since(start)}
		if err != nil {
			s.loadErr = err
			s.logger.Error("dataset load failed", "error", err, "elapsed", stats.Elapsed)
			if s.rec != nil {
				s.rec.RecordLoad(stats, err)
			}
			return
		}
		snap.id = uuid.NewString()
		snap.loadedAt = time.Now().UTC()
		s.snap.Store(snap)

		stats.SnapshotID = snap.id
		stats.Members = len(snap.members)
		stats.Surveys = len(snap.surveys)
		stats.Statuses = len(snap.statuses)
		stats.Participations = len(snap.participations)
		stats.Dangling = countDangling(snap)
		s.logger.Info("dataset loaded",
			"snapshot_id", stats.SnapshotID,
			"members", stats.Members,
			"surveys", stats.Surveys,
			"statuses", stats.Statuses,
			"participations", stats.Participations,
			"elapsed", stats.Elapsed)
		if stats.Dangling > 0 {
			s.logger.Warn("participations reference unknown members or surveys; they are left out of query results",
				"count", stats.Dangling)
		}
		if s.rec != nil {
			s.rec.RecordLoad(stats, nil)
		}
	})
	return s.loadErr
}

func (s *Store) build(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{
		membersByID:  map[int]models.Member{},
		surveysByID:  map[int]models.Survey{},
		statusesByID: map[int]models.Status{},
	}
	err := readRecords(ctx, s.src.FS, s.src.MembersFile, func(r Record) error {
		m, err := DecodeMember(r)
		if err != nil {
			return err
		}
		snap.members = append(snap.members, m)
		snap.membersByID[m.ID] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = readRecords(ctx, s.src.FS, s.src.SurveysFile, func(r Record) error {
		sv, err := DecodeSurvey(r)
		if err != nil {
			return err
		}
		snap.surveys = append(snap.surveys, sv)
		snap.surveysByID[sv.ID] = sv
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = readRecords(ctx, s.src.FS, s.src.StatusesFile, func(r Record) error {
		st, err := DecodeStatus(r)
		if err != nil {
			return err
		}
		snap.statuses = append(snap.statuses, st)
		snap.statusesByID[st.ID] = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = readRecords(ctx, s.src.FS, s.src.ParticipationFile, func(r Record) error {
		p, err := DecodeParticipation(r, snap.statusesByID)
		if err != nil {
			return err
		}
		snap.participations = append(snap.participations, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func countDangling(snap *snapshot) int {
	n := 0
	for _, p := range snap.participations {
		_, okM := snap.membersByID[p.MemberID]
		_, okS := snap.surveysByID[p.SurveyID]
		if !okM || !okS {
			n++
		}
	}
	return n
}

func (s *Store) current() *snapshot {
	if snap := s.snap.Load(); snap != nil {
		return snap
	}
	return emptySnapshot
}

func (s *Store) Loaded() bool { return s.snap.Load() != nil }

// SnapshotID identifies the published dataset; empty before Load succeeds.
func (s *Store) SnapshotID() string { return s.current().id }

func (s *Store) LoadedAt() time.Time { return s.current().loadedAt }

func (s *Store) AllMembers() []models.Member {
	return append([]models.Member{}, s.current().members...)
}

func (s *Store) AllSurveys() []models.Survey {
	return append([]models.Survey{}, s.current().surveys...)
}

func (s *Store) AllStatuses() []models.Status {
	return append([]models.Status{}, s.current().statuses...)
}

func (s *Store) AllParticipations() []models.Participation {
	return append([]models.Participation{}, s.current().participations...)
}

func (s *Store) MemberByID(id int) (models.Member, bool) {
	m, ok := s.current().membersByID[id]
	return m, ok
}

func (s *Store) SurveyByID(id int) (models.Survey, bool) {
	sv, ok := s.current().surveysByID[id]
	return sv, ok
}

func (s *Store) StatusByID(id int) (models.Status, bool) {
	st, ok := s.current().statusesByID[id]
	return st, ok
}

func (s *Store) MembersIndex() map[int]models.Member {
	return copyIndex(s.current().membersByID)
}

func (s *Store) SurveysIndex() map[int]models.Survey {
	return copyIndex(s.current().surveysByID)
}

func (s *Store) StatusesIndex() map[int]models.Status {
	return copyIndex(s.current().statusesByID)
}

func copyIndex[V any](in map[int]V) map[int]V {
	out := make(map[int]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
