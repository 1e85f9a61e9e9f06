package training

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/sqlite"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.NewSentinel("not found")

// Collection names in the collections table.
const (
	collectionWorkoutLog    = "workout_log"
	collectionCheckIns      = "check_ins"
	collectionBaseline      = "baseline"
	collectionProgression   = "progression"
	collectionActiveConfig  = "active_config"
	collectionConfigHistory = "config_history"
	collectionObjectives    = "objectives"
	collectionArchived      = "archived_objectives"
	collectionPreferences   = "preferences"
)

// documentStore persists one whole collection as a JSON document in the
// collections table. Reads of missing or malformed documents degrade to the
// typed default (malformed ones are logged, never propagated); writes always
// replace the full document.
type documentStore[T any] struct {
	db           *sqlite.Database
	logger       *slog.Logger
	name         string
	defaultValue func() T
}

func newDocumentStore[T any](
	db *sqlite.Database,
	logger *slog.Logger,
	name string,
	defaultValue func() T,
) *documentStore[T] {
	return &documentStore[T]{
		db:           db,
		logger:       logger,
		name:         name,
		defaultValue: defaultValue,
	}
}

// Get reads the collection, returning the typed default when nothing is
// stored or the stored document cannot be decoded.
func (s *documentStore[T]) Get(ctx context.Context) (T, error) {
	var raw []byte
	err := s.db.ReadOnly.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE name = ?`, s.name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaultValue(), nil
	}
	if err != nil {
		return s.defaultValue(), fmt.Errorf("query collection %s: %w", s.name, err)
	}

	value := s.defaultValue()
	if err = json.Unmarshal(raw, &value); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "malformed collection document, using default",
			slog.String("collection", s.name), slog.Any("error", err))
		return s.defaultValue(), nil
	}
	return value, nil
}

// Set replaces the whole collection document.
func (s *documentStore[T]) Set(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", s.name, err)
	}
	_, err = s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO collections (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		s.name, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save collection %s: %w", s.name, err)
	}
	return nil
}

// Update applies a read-modify-write cycle over the full document. The
// mutation function returns whether anything changed; unchanged documents
// are not rewritten.
func (s *documentStore[T]) Update(ctx context.Context, fn func(*T) (bool, error)) error {
	value, err := s.Get(ctx)
	if err != nil {
		return fmt.Errorf("read for update: %w", err)
	}
	changed, err := fn(&value)
	if err != nil {
		return fmt.Errorf("update collection %s: %w", s.name, err)
	}
	if !changed {
		return nil
	}
	if err = s.Set(ctx, value); err != nil {
		return fmt.Errorf("write after update: %w", err)
	}
	return nil
}

// repository groups the typed document stores for all collections.
type repository struct {
	log           *documentStore[WorkoutLog]
	checkIns      *documentStore[[]DailyCheckIn]
	baseline      *documentStore[PersonalBaseline]
	progression   *documentStore[ProgressionHistory]
	activeConfig  *documentStore[*TrainingConfig]
	configHistory *documentStore[[]TrainingConfig]
	objectives    *documentStore[[]ActivatedObjective]
	archived      *documentStore[[]ArchivedObjective]
	prefs         *documentStore[Preferences]
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{
		log: newDocumentStore(db, logger, collectionWorkoutLog,
			func() WorkoutLog { return WorkoutLog{} }), //nolint:exhaustruct // empty log.
		checkIns: newDocumentStore(db, logger, collectionCheckIns,
			func() []DailyCheckIn { return nil }),
		baseline: newDocumentStore(db, logger, collectionBaseline,
			func() PersonalBaseline { return PersonalBaseline{} }), //nolint:exhaustruct // null baseline.
		progression: newDocumentStore(db, logger, collectionProgression,
			func() ProgressionHistory { return ProgressionHistory{} }), //nolint:exhaustruct // empty history.
		activeConfig: newDocumentStore(db, logger, collectionActiveConfig,
			func() *TrainingConfig { return nil }),
		configHistory: newDocumentStore(db, logger, collectionConfigHistory,
			func() []TrainingConfig { return nil }),
		objectives: newDocumentStore(db, logger, collectionObjectives,
			func() []ActivatedObjective { return nil }),
		archived: newDocumentStore(db, logger, collectionArchived,
			func() []ArchivedObjective { return nil }),
		prefs: newDocumentStore(db, logger, collectionPreferences,
			func() Preferences { return Preferences{} }), //nolint:exhaustruct // empty prefs.
	}
}
