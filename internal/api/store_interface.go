package api

import (
	"time"

	"github.com/soaringjerry/panelstats/internal/db"
	"github.com/soaringjerry/panelstats/internal/services"
)

// Store is the read surface the HTTP layer needs: the query datasets plus the
// snapshot metadata reported by /health and used for ETags.
type Store interface {
	services.SurveyStore

	Loaded() bool
	SnapshotID() string
	LoadedAt() time.Time
}

var _ Store = (*db.Store)(nil)
