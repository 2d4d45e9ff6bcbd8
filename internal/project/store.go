package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subscan/internal/ocr"
	"subscan/internal/subtitles"
)

// ErrRunNotFound reports lookups for a run ID the store does not hold.
var ErrRunNotFound = errors.New("run not found")

// ErrStoreBusy reports that another process holds the writer lock.
var ErrStoreBusy = errors.New("store is locked by another process")

// Run describes one persisted extraction pass.
type Run struct {
	ID        string
	VideoPath string
	CreatedAt time.Time
	UpdatedAt time.Time
	CueCount  int
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the run database in dir and applies the
// schema. The writer lock is acquired for the lifetime of the store; a
// second writer fails with ErrStoreBusy instead of interleaving.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "subscan.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, ErrStoreBusy
	}

	dbPath := filepath.Join(dir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveRun records a finished extraction pass and its cues atomically.
func (s *Store) SaveRun(ctx context.Context, videoPath string, cues []subtitles.Cue) (*Run, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, video_path, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, videoPath, timestamp, timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for _, cue := range cues {
		boxX, boxY, boxW, boxH := nullableBox(cue.Box)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cues (run_id, idx, start_ms, end_ms, text, box_x, box_y, box_w, box_h)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, cue.Index, cue.StartMS, cue.EndMS, cue.Text, boxX, boxY, boxW, boxH,
		); err != nil {
			return nil, fmt.Errorf("insert cue %d: %w", cue.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return s.GetRun(ctx, id)
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT r.id, r.video_path, r.created_at, r.updated_at,
                (SELECT COUNT(1) FROM cues c WHERE c.run_id = r.id)
         FROM runs r WHERE r.id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.video_path, r.created_at, r.updated_at,
                (SELECT COUNT(1) FROM cues c WHERE c.run_id = r.id)
         FROM runs r ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Cues returns a run's cues ordered by index.
func (s *Store) Cues(ctx context.Context, runID string) ([]subtitles.Cue, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, start_ms, end_ms, text, box_x, box_y, box_w, box_h
         FROM cues WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("query cues: %w", err)
	}
	defer rows.Close()

	var cues []subtitles.Cue
	for rows.Next() {
		var cue subtitles.Cue
		var boxX, boxY, boxW, boxH sql.NullInt64
		if err := rows.Scan(&cue.Index, &cue.StartMS, &cue.EndMS, &cue.Text, &boxX, &boxY, &boxW, &boxH); err != nil {
			return nil, fmt.Errorf("scan cue: %w", err)
		}
		if boxX.Valid && boxY.Valid && boxW.Valid && boxH.Valid {
			cue.Box = &ocr.Rect{X: int(boxX.Int64), Y: int(boxY.Int64), W: int(boxW.Int64), H: int(boxH.Int64)}
		}
		cues = append(cues, cue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cues: %w", err)
	}
	return cues, nil
}

// DeleteRun removes a run and, via cascade, its cues.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt, updatedAt string
	if err := row.Scan(&run.ID, &run.VideoPath, &createdAt, &updatedAt, &run.CueCount); err != nil {
		return nil, err
	}
	var err error
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if run.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &run, nil
}

func nullableBox(box *ocr.Rect) (x, y, w, h any) {
	if box == nil {
		return nil, nil, nil, nil
	}
	return box.X, box.Y, box.W, box.H
}
