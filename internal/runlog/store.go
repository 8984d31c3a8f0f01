// Package runlog keeps a history of chop runs in a SQLite database so a
// sequence of extractions from the same deck can be audited and repeated.
package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/gridchop/internal/timeutil"
)

// startedLayout is fixed width so started_at sorts lexically.
const startedLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("runlog: run not found")

// Run is one recorded invocation. Requested I/J bounds are always present.
// Z-limits are the clamped values on success and the requested values on
// failure; non-finite values are stored as NULL and read back as ±Inf.
// Layer range, dimensions and cell count are only set for successful runs.
type Run struct {
	ID        string
	StartedAt time.Time
	Input     string
	Output    string

	IMin, IMax int
	JMin, JMax int
	ZMin, ZMax float64

	KMin, KMax  int
	NX, NY, NZ  int
	ActiveCells int

	Fields   string
	Duration time.Duration
	Err      string
}

// Succeeded reports whether the run produced a sub-grid.
func (r Run) Succeeded() bool { return r.Err == "" }

// Store is a run history database.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Open opens or creates the history database at path and brings its schema
// up to date. ":memory:" gives a private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps an in-memory database alive and serialises
	// writers on a file database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, clock: timeutil.RealClock{}}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// SetClock replaces the clock used to stamp runs recorded without a start
// time.
func (s *Store) SetClock(c timeutil.Clock) {
	s.clock = c
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts r and returns its id. A missing id is generated and a zero
// StartedAt is set to now.
func (s *Store) Record(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = s.clock.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chop_runs (
			run_id, started_at, input_path, output_path,
			imin, imax, jmin, jmax, zmin, zmax,
			kmin, kmax, nx, ny, nz, active_cells,
			fields, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(startedLayout), r.Input, r.Output,
		r.IMin, r.IMax, r.JMin, r.JMax, finiteOrNull(r.ZMin), finiteOrNull(r.ZMax),
		r.KMin, r.KMax, r.NX, r.NY, r.NZ, r.ActiveCells,
		r.Fields, r.Duration.Milliseconds(), r.Err,
	)
	if err != nil {
		return "", fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return r.ID, nil
}

const selectRuns = `
	SELECT run_id, started_at, input_path, output_path,
		imin, imax, jmin, jmax, zmin, zmax,
		kmin, kmax, nx, ny, nz, active_cells,
		fields, duration_ms, error
	FROM chop_runs`

// List returns up to limit runs, most recent first. A limit of zero or less
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+` WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r          Run
		started    string
		zmin, zmax sql.NullFloat64
		kmin, kmax sql.NullInt64
		nx, ny, nz sql.NullInt64
		active     sql.NullInt64
		durationMS int64
	)
	err := sc.Scan(
		&r.ID, &started, &r.Input, &r.Output,
		&r.IMin, &r.IMax, &r.JMin, &r.JMax, &zmin, &zmax,
		&kmin, &kmax, &nx, &ny, &nz, &active,
		&r.Fields, &durationMS, &r.Err,
	)
	if err != nil {
		return Run{}, err
	}
	if r.StartedAt, err = time.Parse(startedLayout, started); err != nil {
		return Run{}, fmt.Errorf("run %s: bad started_at %q: %w", r.ID, started, err)
	}
	r.ZMin = floatOr(zmin, math.Inf(-1))
	r.ZMax = floatOr(zmax, math.Inf(1))
	r.KMin, r.KMax = int(kmin.Int64), int(kmax.Int64)
	r.NX, r.NY, r.NZ = int(nx.Int64), int(ny.Int64), int(nz.Int64)
	r.ActiveCells = int(active.Int64)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return r, nil
}

func finiteOrNull(v float64) sql.NullFloat64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func floatOr(v sql.NullFloat64, def float64) float64 {
	if v.Valid {
		return v.Float64
	}
	return def
}
