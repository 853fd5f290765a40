package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SaveMappings replaces the pending mappings recorded for discID.
func (s *Store) SaveMappings(ctx context.Context, discID string, entries []MapEntry) error {
	if strings.TrimSpace(discID) == "" {
		return fmt.Errorf("%w: disc id is empty", ErrInvalid)
	}
	for _, e := range entries {
		if e.Title <= 0 || (e.StartChapter > 0) != (e.EndChapter > 0) || e.StartChapter > e.EndChapter {
			return fmt.Errorf("%w: mapping of episode %d", ErrInvalid, e.Episode.Number)
		}
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM mappings WHERE disc_id = ?", discID); err != nil {
			return fmt.Errorf("clear mappings: %w", err)
		}
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO mappings (disc_id, program, season, episode, title, start_chapter, end_chapter)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				discID, e.Episode.Program, e.Episode.Season, e.Episode.Number,
				e.Title, nullableInt(e.StartChapter), nullableInt(e.EndChapter)); err != nil {
				return fmt.Errorf("insert mapping for episode %d: %w", e.Episode.Number, err)
			}
		}
		return nil
	})
}

// Mappings returns the pending mappings recorded for discID in episode order.
func (s *Store) Mappings(ctx context.Context, discID string) ([]MapEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT program, season, episode, title, start_chapter, end_chapter
        FROM mappings
        WHERE disc_id = ?
        ORDER BY program, season, episode`, discID)
	if err != nil {
		return nil, fmt.Errorf("query mappings: %w", err)
	}
	defer rows.Close()

	var entries []MapEntry
	for rows.Next() {
		var (
			e          MapEntry
			start, end sql.NullInt64
		)
		if err := rows.Scan(&e.Episode.Program, &e.Episode.Season, &e.Episode.Number, &e.Title, &start, &end); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		e.StartChapter = int(start.Int64)
		e.EndChapter = int(end.Int64)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
