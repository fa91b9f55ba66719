package recording

import (
	"database/sql"
	"fmt"
)

// FrameSample is one stored frame row
type FrameSample struct {
	Tick          uint64
	CurrentTime   float64
	TargetTime    float64
	Velocity      float64
	Moving        bool
	Transitioning bool
	LivePeriod    string
	Artifacts     int
}

// ReadFrames returns stored frames in tick order
func ReadFrames(db *sql.DB) ([]FrameSample, error) {
	rows, err := db.Query(`SELECT tick, time_current, time_target, velocity, moving, transitioning,
		COALESCE(live_period, ''), artifacts FROM frames ORDER BY tick`)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var out []FrameSample
	for rows.Next() {
		var s FrameSample
		if err := rows.Scan(&s.Tick, &s.CurrentTime, &s.TargetTime, &s.Velocity,
			&s.Moving, &s.Transitioning, &s.LivePeriod, &s.Artifacts); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ArtifactLifetimes returns, per artifact ID, the number of ticks it was recorded
func ArtifactLifetimes(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT id, COUNT(*) FROM artifacts GROUP BY id`)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}
