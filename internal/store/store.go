// Package store persists problems, methodology data, conclusions and
// solutions. Every save for a (kind, problem id) pair replaces the previous
// record: the old one is deleted and a fresh record with a new id and
// timestamp is inserted.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"

	"github.com/dshills/rootcause/internal/config"
	"github.com/dshills/rootcause/internal/logger"
	"github.com/dshills/rootcause/internal/schema"
)

// Store is the record store used by the workflow engine.
type Store interface {
	// SaveProblem inserts p or replaces the stored problem with the same id.
	SaveProblem(ctx context.Context, p schema.Problem) (schema.Problem, error)
	SaveIshikawa(ctx context.Context, problemID string, d schema.IshikawaData) (schema.Record[schema.IshikawaData], error)
	SaveFiveWhys(ctx context.Context, problemID string, d schema.FiveWhysData) (schema.Record[schema.FiveWhysData], error)
	SavePareto(ctx context.Context, problemID string, d schema.ParetoData) (schema.Record[schema.ParetoData], error)
	SaveFMEA(ctx context.Context, problemID string, d schema.FMEAData) (schema.Record[schema.FMEAData], error)
	SaveConclusion(ctx context.Context, problemID, text string) (schema.ConclusionRecord, error)
	SaveSolutions(ctx context.Context, problemID string, solutions []schema.Solution) (schema.SolutionSet, error)
	// ProblemData returns everything stored for id. Unknown ids yield nil
	// pieces and an empty solution list, not an error.
	ProblemData(ctx context.Context, id string) (schema.ProblemData, error)
	// ListProblems returns problems in insertion order.
	ListProblems(ctx context.Context) ([]schema.Problem, error)
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg config.StoreConfig, log *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemory(), nil
	case config.DriverSQLite:
		return OpenGorm(sqlite.Open(cfg.DSN), log)
	case config.DriverPostgres:
		return OpenGorm(postgres.Open(cfg.DSN), log)
	case config.DriverMySQL:
		return OpenGorm(mysql.Open(cfg.DSN), log)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// stamp supplies record ids and timestamps; tests replace it.
type stamp struct {
	newID func() string
	now   func() time.Time
}

func defaultStamp() stamp {
	return stamp{newID: uuid.NewString, now: func() time.Time { return time.Now().UTC() }}
}

// nonNil keeps the "solutions is always a list" contract on the wire.
func nonNil(s []schema.Solution) []schema.Solution {
	if s == nil {
		return []schema.Solution{}
	}
	return s
}
