package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Result is one finished game.
type Result struct {
	ID        int64
	LevelID   string
	Won       bool
	Seconds   int    // Elapsed play time
	Session   string // SSH session id, empty for local play
	CreatedAt time.Time
}

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.LevelID == "" {
		return 0, errors.New("storage: cannot save result without level id")
	}
	if r.Seconds < 0 {
		r.Seconds = 0
	}

	res, err := s.db.Exec(
		"INSERT INTO results (level_id, won, seconds, session) VALUES (?, ?, ?, ?)",
		r.LevelID, r.Won, r.Seconds, r.Session,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestTimes retrieves the fastest N wins for the given level.
// Results are ordered by seconds ascending, earlier records first on ties.
func (s *Store) BestTimes(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryResults(
		`SELECT id, level_id, won, seconds, session, created_at
		 FROM results
		 WHERE level_id = ? AND won = 1
		 ORDER BY seconds ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
}

// RecentResults retrieves the latest N results for the given level, wins and losses.
func (s *Store) RecentResults(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryResults(
		`SELECT id, level_id, won, seconds, session, created_at
		 FROM results
		 WHERE level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, limit,
	)
}

// BestTime returns the fastest win for the given level.
// ok is false if the level has never been won.
func (s *Store) BestTime(levelID string) (seconds int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(seconds) FROM results WHERE level_id = ? AND won = 1",
		levelID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// ClearResults deletes all results for the given level.
func (s *Store) ClearResults(levelID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Won, &r.Seconds, &r.Session, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}
