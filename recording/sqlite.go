// Package recording persists the frame stream to SQLite for offline inspection
package recording

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
)

const schema = `
CREATE TABLE IF NOT EXISTS frames (
	tick          INTEGER PRIMARY KEY,
	time_current  REAL NOT NULL,
	time_target   REAL NOT NULL,
	velocity      REAL NOT NULL,
	moving        INTEGER NOT NULL,
	transitioning INTEGER NOT NULL,
	live_period   TEXT,
	artifacts     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS artifacts (
	tick       INTEGER NOT NULL,
	id         TEXT NOT NULL,
	opacity    REAL NOT NULL,
	color_hint TEXT
);
CREATE INDEX IF NOT EXISTS artifacts_id ON artifacts(id);
`

type frameRow struct {
	tick          uint64
	currentTime   float64
	targetTime    float64
	velocity      float64
	moving        bool
	transitioning bool
	livePeriod    string
	artifacts     int
}

type artifactRow struct {
	tick      uint64
	id        string
	opacity   float64
	colorHint string
}

// Recorder is a Presenter that buffers frames and writes them in batched transactions
// Buffered rows are flushed on Close, when the batch fills, and at process exit
type Recorder struct {
	*sql.DB

	mu           sync.Mutex
	path         string
	batchSize    int
	frameStmt    *sql.Stmt
	artifactStmt *sql.Stmt

	frames    []frameRow
	artifacts []artifactRow
	written   uint64
	dropped   uint64
	closed    bool
}

// NewRecorder opens or creates the database at path
// An empty path creates a uniquely named file in the working directory
func NewRecorder(path string, batchSize int) (*Recorder, error) {
	if path == "" {
		path = xid.New().String() + ".sqlite3"
	}
	if batchSize <= 0 {
		batchSize = parameter.RecordingBatchSize
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open recording %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create recording schema: %w", err)
	}

	r := &Recorder{
		DB:        db,
		path:      path,
		batchSize: batchSize,
	}

	r.frameStmt, err = db.Prepare(`INSERT OR REPLACE INTO frames
		(tick, time_current, time_target, velocity, moving, transitioning, live_period, artifacts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare frame insert: %w", err)
	}
	r.artifactStmt, err = db.Prepare(`INSERT INTO artifacts (tick, id, opacity, color_hint) VALUES (?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare artifact insert: %w", err)
	}

	atexit.Register(func() {
		if err := r.Close(); err != nil {
			log.Printf("Recording close failed: %v", err)
		}
	})

	log.Printf("Recording frames to %s", path)
	return r, nil
}

// Path returns the database file
func (r *Recorder) Path() string {
	return r.path
}

// Present implements engine.Presenter
func (r *Recorder) Present(frame *engine.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.frames = append(r.frames, frameRow{
		tick:          frame.Tick,
		currentTime:   frame.CurrentTime,
		targetTime:    frame.TargetTime,
		velocity:      frame.Velocity,
		moving:        frame.Moving,
		transitioning: frame.Transitioning,
		livePeriod:    frame.LivePeriod,
		artifacts:     len(frame.Artifacts),
	})
	for i := range frame.Artifacts {
		a := &frame.Artifacts[i]
		r.artifacts = append(r.artifacts, artifactRow{
			tick:      frame.Tick,
			id:        a.ID,
			opacity:   a.Opacity,
			colorHint: a.ColorHint,
		})
	}

	if n := len(r.frames); n >= r.batchSize {
		if err := r.flushLocked(); err != nil {
			log.Printf("Recording flush failed, dropped %d frames: %v", n, err)
		}
	}
}

// Flush writes all buffered rows
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushLocked()
}

// flushLocked writes the buffered batch; rows of a failed batch are discarded
func (r *Recorder) flushLocked() error {
	if len(r.frames) == 0 || r.closed {
		return nil
	}
	if err := r.writeLocked(); err != nil {
		r.dropped += uint64(len(r.frames))
		r.frames = r.frames[:0]
		r.artifacts = r.artifacts[:0]
		return err
	}

	r.written += uint64(len(r.frames))
	r.frames = r.frames[:0]
	r.artifacts = r.artifacts[:0]
	return nil
}

func (r *Recorder) writeLocked() error {
	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("begin recording batch: %w", err)
	}

	frameStmt := tx.Stmt(r.frameStmt)
	for _, f := range r.frames {
		_, err := frameStmt.Exec(f.tick, f.currentTime, f.targetTime, f.velocity,
			f.moving, f.transitioning, f.livePeriod, f.artifacts)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert frame %d: %w", f.tick, err)
		}
	}

	artifactStmt := tx.Stmt(r.artifactStmt)
	for _, a := range r.artifacts {
		if _, err := artifactStmt.Exec(a.tick, a.id, a.opacity, a.colorHint); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert artifact %s: %w", a.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recording batch: %w", err)
	}
	return nil
}

// Written returns the number of frames committed
func (r *Recorder) Written() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// Dropped returns the number of frames discarded by failed flushes
func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes and releases the database; safe to call more than once
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	err := r.flushLocked()
	r.closed = true

	r.frameStmt.Close()
	r.artifactStmt.Close()
	if cerr := r.DB.Close(); err == nil {
		err = cerr
	}
	return err
}
