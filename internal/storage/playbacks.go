package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/virtualcube"
)

// Playback is a journaled sequence playback.
type Playback struct {
	PlaybackID string
	SessionID  string
	Origin     virtualcube.SequenceOrigin
	Notation   string
	MoveCount  int
	Played     int
	Completed  bool
	Solved     bool
	StartedAt  time.Time
	EndedAt    time.Time
}

// Duration returns how long the playback ran.
func (p *Playback) Duration() time.Duration {
	return p.EndedAt.Sub(p.StartedAt)
}

// PlaybackRepository stores playbacks. It implements virtualcube.Journal.
type PlaybackRepository struct {
	db *DB
}

// NewPlaybackRepository creates a new playback repository.
func NewPlaybackRepository(db *DB) *PlaybackRepository {
	return &PlaybackRepository{db: db}
}

var _ virtualcube.Journal = (*PlaybackRepository)(nil)

// Record writes a playback and its moves in one transaction. A record
// without an ID is given a fresh one.
func (r *PlaybackRepository) Record(ctx context.Context, rec virtualcube.PlaybackRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.EndedAt.IsZero() {
		rec.EndedAt = time.Now()
	}

	return r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO playbacks (playback_id, session_id, origin, notation, move_count, played, completed, solved, started_at, ended_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.SessionID, rec.Origin.String(), virtualcube.FormatMoves(rec.Moves),
			len(rec.Moves), rec.Played, boolToInt(rec.Completed), boolToInt(rec.Solved),
			formatTime(rec.StartedAt), formatTime(rec.EndedAt))
		if err != nil {
			return fmt.Errorf("failed to insert playback: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO playback_moves (playback_id, move_index, face, quarter_turns, notation)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare move insert: %w", err)
		}
		defer stmt.Close()

		for i, m := range rec.Moves {
			if _, err := stmt.ExecContext(ctx, rec.ID, i, m.Face.Letter(), m.QuarterTurns, m.Notation()); err != nil {
				return fmt.Errorf("failed to insert move %d: %w", i, err)
			}
		}
		return nil
	})
}

// Get retrieves a playback by ID. It returns nil, nil if none exists.
func (r *PlaybackRepository) Get(ctx context.Context, playbackID string) (*Playback, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT playback_id, session_id, origin, notation, move_count, played, completed, solved, started_at, ended_at
		FROM playbacks
		WHERE playback_id = ?
	`, playbackID)

	p, err := scanPlayback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playback: %w", err)
	}
	return p, nil
}

// List returns the most recent playbacks, newest first. A limit of zero
// or less returns all of them.
func (r *PlaybackRepository) List(ctx context.Context, limit int) ([]Playback, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT playback_id, session_id, origin, notation, move_count, played, completed, solved, started_at, ended_at
		FROM playbacks
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list playbacks: %w", err)
	}
	defer rows.Close()

	var out []Playback
	for rows.Next() {
		p, err := scanPlayback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playback: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Moves returns the moves of a playback in order.
func (r *PlaybackRepository) Moves(ctx context.Context, playbackID string) ([]virtualcube.Move, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT face, quarter_turns
		FROM playback_moves
		WHERE playback_id = ?
		ORDER BY move_index
	`, playbackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var moves []virtualcube.Move
	for rows.Next() {
		var letter string
		var turns int
		if err := rows.Scan(&letter, &turns); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		if len(letter) != 1 {
			return nil, fmt.Errorf("%w: stored face %q", virtualcube.ErrUnknownFace, letter)
		}
		face, ok := virtualcube.FaceFromLetter(letter[0])
		if !ok {
			return nil, fmt.Errorf("%w: stored face %q", virtualcube.ErrUnknownFace, letter)
		}
		moves = append(moves, virtualcube.NewMove(face, turns))
	}
	return moves, rows.Err()
}

// Stats summarizes the journal.
type Stats struct {
	Playbacks int
	Completed int
	Solved    int
	Moves     int
}

// Stats counts journaled playbacks.
func (r *PlaybackRepository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(SUM(solved), 0), COALESCE(SUM(played), 0)
		FROM playbacks
	`).Scan(&s.Playbacks, &s.Completed, &s.Solved, &s.Moves)
	if err != nil {
		return s, fmt.Errorf("failed to get stats: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayback(sc scanner) (*Playback, error) {
	var p Playback
	var origin, startedAt, endedAt string
	var completed, solved int
	err := sc.Scan(&p.PlaybackID, &p.SessionID, &origin, &p.Notation, &p.MoveCount,
		&p.Played, &completed, &solved, &startedAt, &endedAt)
	if err != nil {
		return nil, err
	}

	o, ok := virtualcube.ParseOrigin(origin)
	if !ok {
		return nil, fmt.Errorf("unknown origin %q", origin)
	}
	p.Origin = o
	p.Completed = completed != 0
	p.Solved = solved != 0
	if p.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	if p.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return nil, fmt.Errorf("failed to parse end time: %w", err)
	}
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
