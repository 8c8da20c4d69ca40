package matchstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"matchmill/internal/game"
)

// Record is the summary view of a stored match.
type Record struct {
	Key         string
	StartedAt   float64
	Map         string
	GameMode    string
	Rounds      int
	Duration    float64
	Won         *bool
	Score       *game.Score
	GameVersion string
	Warnings    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const recordColumns = "match_key, started_at, map, game_mode, rounds, duration, won, score_won, score_lost, game_version, warnings, created_at, updated_at"

// Save inserts m or replaces the stored match with the same key.
func (s *Store) Save(ctx context.Context, m *game.Match) error {
	if m == nil || m.Key == "" {
		return ErrEmptyKey
	}
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.Key, err)
	}

	var won, scoreWon, scoreLost sql.NullInt64
	if m.Won != nil {
		won = sql.NullInt64{Int64: boolToInt(*m.Won), Valid: true}
	}
	if m.Score != nil {
		scoreWon = sql.NullInt64{Int64: int64(m.Score.Won), Valid: true}
		scoreLost = sql.NullInt64{Int64: int64(m.Score.Lost), Valid: true}
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.execWithRetry(ctx,
		`INSERT INTO matches (
            match_key, started_at, map, game_mode, rounds, duration, won,
            score_won, score_lost, game_version, warnings, document, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(match_key) DO UPDATE SET
            started_at = excluded.started_at,
            map = excluded.map,
            game_mode = excluded.game_mode,
            rounds = excluded.rounds,
            duration = excluded.duration,
            won = excluded.won,
            score_won = excluded.score_won,
            score_lost = excluded.score_lost,
            game_version = excluded.game_version,
            warnings = excluded.warnings,
            document = excluded.document,
            updated_at = excluded.updated_at`,
		m.Key,
		m.Timestamp,
		m.Map,
		m.GameMode,
		len(m.Rounds),
		m.Duration,
		won,
		scoreWon,
		scoreLost,
		m.GameVersion,
		len(m.Warnings),
		string(doc),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("save match %s: %w", m.Key, err)
	}
	return nil
}

// Get returns the full match stored under key.
func (s *Store) Get(ctx context.Context, key string) (*game.Match, error) {
	ctx = ensureContext(ctx)
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM matches WHERE match_key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", key, err)
	}
	var m game.Match
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", key, err)
	}
	return &m, nil
}

// List returns match summaries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + recordColumns + ` FROM matches ORDER BY started_at DESC, match_key DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the match stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM matches WHERE match_key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete match %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete match %s: %w", key, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

// Count returns the number of stored matches.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (Record, error) {
	var (
		rec        Record
		won        sql.NullInt64
		scoreWon   sql.NullInt64
		scoreLost  sql.NullInt64
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&rec.Key,
		&rec.StartedAt,
		&rec.Map,
		&rec.GameMode,
		&rec.Rounds,
		&rec.Duration,
		&won,
		&scoreWon,
		&scoreLost,
		&rec.GameVersion,
		&rec.Warnings,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return Record{}, err
	}
	if won.Valid {
		v := won.Int64 != 0
		rec.Won = &v
	}
	if scoreWon.Valid && scoreLost.Valid {
		rec.Score = &game.Score{Won: int(scoreWon.Int64), Lost: int(scoreLost.Int64)}
	}
	rec.CreatedAt = parseTime(createdRaw)
	rec.UpdatedAt = parseTime(updatedRaw)
	return rec, nil
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
