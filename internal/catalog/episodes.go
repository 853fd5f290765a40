package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const episodeColumns = "program, season, episode, name, disc_id, disc_title, start_chapter, end_chapter"

func scanEpisode(scanner interface{ Scan(dest ...any) error }) (Episode, error) {
	var (
		e            Episode
		discID       sql.NullString
		discTitle    sql.NullInt64
		startChapter sql.NullInt64
		endChapter   sql.NullInt64
	)
	if err := scanner.Scan(&e.Program, &e.Season, &e.Number, &e.Name, &discID, &discTitle, &startChapter, &endChapter); err != nil {
		return Episode{}, err
	}
	e.DiscID = discID.String
	e.DiscTitle = int(discTitle.Int64)
	e.StartChapter = int(startChapter.Int64)
	e.EndChapter = int(endChapter.Int64)
	return e, nil
}

func (s *Store) queryEpisodes(ctx context.Context, where string, args ...any) ([]Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+episodeColumns+" FROM episodes WHERE "+where+" ORDER BY program, season, episode", args...)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

// Episodes lists every episode of a season in number order.
func (s *Store) Episodes(ctx context.Context, program string, season int) ([]Episode, error) {
	stored, err := s.requireSeason(ctx, program, season)
	if err != nil {
		return nil, err
	}
	return s.queryEpisodes(ctx, "program = ? AND season = ?", stored, season)
}

// UnrippedEpisodes lists the episodes of a season with no rip history.
func (s *Store) UnrippedEpisodes(ctx context.Context, program string, season int) ([]Episode, error) {
	stored, err := s.requireSeason(ctx, program, season)
	if err != nil {
		return nil, err
	}
	return s.queryEpisodes(ctx, "program = ? AND season = ? AND disc_id IS NULL", stored, season)
}

// Episode fetches one episode.
func (s *Store) Episode(ctx context.Context, key EpisodeKey) (Episode, error) {
	stored, err := s.ResolveProgram(ctx, key.Program)
	if err != nil {
		return Episode{}, err
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT "+episodeColumns+" FROM episodes WHERE program = ? AND season = ? AND episode = ?",
		stored, key.Season, key.Number)
	e, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Episode{}, fmt.Errorf("episode %d of %q season %d %w", key.Number, stored, key.Season, ErrNotFound)
	}
	if err != nil {
		return Episode{}, fmt.Errorf("get episode: %w", err)
	}
	return e, nil
}

// RippedOn lists episodes whose rip history names discID.
func (s *Store) RippedOn(ctx context.Context, discID string) ([]Episode, error) {
	if strings.TrimSpace(discID) == "" {
		return nil, nil
	}
	return s.queryEpisodes(ctx, "disc_id = ?", discID)
}

// AddEpisodes appends named episodes after the last episode of the season.
func (s *Store) AddEpisodes(ctx context.Context, program string, season int, names ...string) ([]Episode, error) {
	stored, err := s.requireSeason(ctx, program, season)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: episode name is empty", ErrInvalid)
		}
	}

	var added []Episode
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		added = added[:0]
		var last int
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(episode), 0) FROM episodes WHERE program = ? AND season = ?",
			stored, season).Scan(&last); err != nil {
			return fmt.Errorf("find last episode: %w", err)
		}
		for i, name := range names {
			e := Episode{Program: stored, Season: season, Number: last + i + 1, Name: strings.TrimSpace(name)}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO episodes (program, season, episode, name) VALUES (?, ?, ?, ?)",
				e.Program, e.Season, e.Number, e.Name); err != nil {
				return fmt.Errorf("insert episode: %w", err)
			}
			added = append(added, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// InsertEpisode inserts a named episode at number, renumbering that episode
// and every later one up by one.
func (s *Store) InsertEpisode(ctx context.Context, program string, season, number int, name string) (Episode, error) {
	stored, err := s.requireSeason(ctx, program, season)
	if err != nil {
		return Episode{}, err
	}
	if number < 1 {
		return Episode{}, fmt.Errorf("%w: episode number %d", ErrInvalid, number)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Episode{}, fmt.Errorf("%w: episode name is empty", ErrInvalid)
	}

	e := Episode{Program: stored, Season: season, Number: number, Name: name}
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var last int
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(episode), 0) FROM episodes WHERE program = ? AND season = ?",
			stored, season).Scan(&last); err != nil {
			return fmt.Errorf("find last episode: %w", err)
		}
		if number > last+1 {
			return fmt.Errorf("%w: episode %d would leave a gap after episode %d", ErrInvalid, number, last)
		}
		// Uniqueness is checked row by row, so move the tail out of the way
		// through negative numbers.
		if _, err := tx.ExecContext(ctx,
			"UPDATE episodes SET episode = -episode WHERE program = ? AND season = ? AND episode >= ?",
			stored, season, number); err != nil {
			return fmt.Errorf("shift episodes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE episodes SET episode = 1 - episode WHERE program = ? AND season = ? AND episode < 0",
			stored, season); err != nil {
			return fmt.Errorf("shift episodes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO episodes (program, season, episode, name) VALUES (?, ?, ?, ?)",
			e.Program, e.Season, e.Number, e.Name); err != nil {
			return fmt.Errorf("insert episode: %w", err)
		}
		return nil
	})
	if err != nil {
		return Episode{}, err
	}
	return e, nil
}

// RenameEpisode changes an episode's name.
func (s *Store) RenameEpisode(ctx context.Context, key EpisodeKey, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: episode name is empty", ErrInvalid)
	}
	return s.updateEpisode(ctx, key, "name = ?", name)
}

// DeleteEpisode removes an episode, renumbering every later episode down by
// one.
func (s *Store) DeleteEpisode(ctx context.Context, key EpisodeKey) error {
	stored, err := s.ResolveProgram(ctx, key.Program)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM episodes WHERE program = ? AND season = ? AND episode = ?",
			stored, key.Season, key.Number)
		if err != nil {
			return fmt.Errorf("delete episode: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("episode %d of %q season %d %w", key.Number, stored, key.Season, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE episodes SET episode = -episode WHERE program = ? AND season = ? AND episode > ?",
			stored, key.Season, key.Number); err != nil {
			return fmt.Errorf("shift episodes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE episodes SET episode = -episode - 1 WHERE program = ? AND season = ? AND episode < 0",
			stored, key.Season); err != nil {
			return fmt.Errorf("shift episodes: %w", err)
		}
		return nil
	})
}

// MarkRipped records where an episode was ripped from.
func (s *Store) MarkRipped(ctx context.Context, key EpisodeKey, rec RipRecord) error {
	if strings.TrimSpace(rec.DiscID) == "" || rec.DiscTitle <= 0 {
		return fmt.Errorf("%w: rip record needs a disc and title", ErrInvalid)
	}
	if (rec.StartChapter > 0) != (rec.EndChapter > 0) || rec.StartChapter > rec.EndChapter {
		return fmt.Errorf("%w: chapter range %d-%d", ErrInvalid, rec.StartChapter, rec.EndChapter)
	}
	return s.updateEpisode(ctx, key,
		"disc_id = ?, disc_title = ?, start_chapter = ?, end_chapter = ?",
		rec.DiscID, rec.DiscTitle, nullableInt(rec.StartChapter), nullableInt(rec.EndChapter))
}

// UnmarkRipped clears an episode's rip history.
func (s *Store) UnmarkRipped(ctx context.Context, key EpisodeKey) error {
	return s.updateEpisode(ctx, key,
		"disc_id = NULL, disc_title = NULL, start_chapter = NULL, end_chapter = NULL")
}

func (s *Store) updateEpisode(ctx context.Context, key EpisodeKey, set string, args ...any) error {
	stored, err := s.ResolveProgram(ctx, key.Program)
	if err != nil {
		return err
	}
	args = append(args, stored, key.Season, key.Number)
	res, err := s.exec(ctx,
		"UPDATE episodes SET "+set+" WHERE program = ? AND season = ? AND episode = ?", args...)
	if err != nil {
		return fmt.Errorf("update episode: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("episode %d of %q season %d %w", key.Number, stored, key.Season, ErrNotFound)
	}
	return nil
}
