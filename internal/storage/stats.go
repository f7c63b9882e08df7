package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Played     int
	Won        int
	BestTime   int // Zero when never won
	AvgWinTime float64
	LastPlayed time.Time
}

// WinRate returns the fraction of games won, 0 when nothing was played.
func (st LevelStats) WinRate() float64 {
	if st.Played == 0 {
		return 0
	}
	return float64(st.Won) / float64(st.Played)
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var best sql.NullInt64
	var avg sql.NullFloat64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        MIN(CASE WHEN won = 1 THEN seconds END),
		        AVG(CASE WHEN won = 1 THEN seconds END),
		        MAX(created_at)
		 FROM results WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Played, &stats.Won, &best, &avg, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	if best.Valid {
		stats.BestTime = int(best.Int64)
	}
	if avg.Valid {
		stats.AvgWinTime = avg.Float64
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        COUNT(*),
		        COALESCE(SUM(won), 0),
		        MIN(CASE WHEN won = 1 THEN seconds END),
		        AVG(CASE WHEN won = 1 THEN seconds END),
		        MAX(created_at)
		 FROM results
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var best sql.NullInt64
		var avg sql.NullFloat64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Played, &st.Won, &best, &avg, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		if best.Valid {
			st.BestTime = int(best.Int64)
		}
		if avg.Valid {
			st.AvgWinTime = avg.Float64
		}
		st.LastPlayed = parseTime(lastPlayed)

		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
