package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeProgramName trims and collapses whitespace and composes the name
// into Unicode NFC so visually identical names are stored identically.
func NormalizeProgramName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// foldProgramName is the case-insensitive lookup key for a program. Casers
// carry state, so each call builds its own.
func foldProgramName(name string) string {
	return cases.Fold().String(NormalizeProgramName(name))
}

// AddProgram creates a program and returns its stored name.
func (s *Store) AddProgram(ctx context.Context, name string) (string, error) {
	normalized := NormalizeProgramName(name)
	if normalized == "" {
		return "", fmt.Errorf("%w: program name is empty", ErrInvalid)
	}
	if existing, err := s.ResolveProgram(ctx, normalized); err == nil {
		return "", fmt.Errorf("program %q %w", existing, ErrExists)
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if _, err := s.exec(ctx, "INSERT INTO programs (name, folded) VALUES (?, ?)", normalized, foldProgramName(normalized)); err != nil {
		return "", fmt.Errorf("insert program: %w", err)
	}
	return normalized, nil
}

// ResolveProgram returns the stored spelling of a program name, matching
// case-insensitively.
func (s *Store) ResolveProgram(ctx context.Context, name string) (string, error) {
	var stored string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM programs WHERE folded = ?", foldProgramName(name)).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("program %q %w", NormalizeProgramName(name), ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("resolve program: %w", err)
	}
	return stored, nil
}

// Programs lists every program with season and episode counts, by name.
func (s *Store) Programs(ctx context.Context) ([]Program, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.name,
               (SELECT COUNT(1) FROM seasons s WHERE s.program = p.name),
               (SELECT COUNT(1) FROM episodes e WHERE e.program = p.name),
               (SELECT COUNT(1) FROM episodes e WHERE e.program = p.name AND e.disc_id IS NOT NULL)
        FROM programs p
        ORDER BY p.folded`)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.Name, &p.Seasons, &p.Episodes, &p.Ripped); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// RemoveProgram deletes a program with all of its seasons and episodes.
func (s *Store) RemoveProgram(ctx context.Context, name string) error {
	stored, err := s.ResolveProgram(ctx, name)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx, "DELETE FROM programs WHERE name = ?", stored); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}

// AddSeason creates season of program.
func (s *Store) AddSeason(ctx context.Context, program string, season int) error {
	if season < 0 {
		return fmt.Errorf("%w: season %d", ErrInvalid, season)
	}
	stored, err := s.ResolveProgram(ctx, program)
	if err != nil {
		return err
	}
	if ok, err := s.seasonExists(ctx, stored, season); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("season %d of %q %w", season, stored, ErrExists)
	}
	if _, err := s.exec(ctx, "INSERT INTO seasons (program, season) VALUES (?, ?)", stored, season); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

// EnsureSeason creates the program and season when missing and returns the
// program's stored name.
func (s *Store) EnsureSeason(ctx context.Context, program string, season int) (string, error) {
	stored, err := s.ResolveProgram(ctx, program)
	if errors.Is(err, ErrNotFound) {
		stored, err = s.AddProgram(ctx, program)
	}
	if err != nil {
		return "", err
	}
	if err := s.AddSeason(ctx, stored, season); err != nil && !errors.Is(err, ErrExists) {
		return "", err
	}
	return stored, nil
}

// Seasons lists the seasons of program in ascending order.
func (s *Store) Seasons(ctx context.Context, program string) ([]Season, error) {
	stored, err := s.ResolveProgram(ctx, program)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT s.season,
               COUNT(e.episode),
               COUNT(e.disc_id)
        FROM seasons s
        LEFT JOIN episodes e ON e.program = s.program AND e.season = s.season
        WHERE s.program = ?
        GROUP BY s.season
        ORDER BY s.season`, stored)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []Season
	for rows.Next() {
		season := Season{Program: stored}
		if err := rows.Scan(&season.Number, &season.Episodes, &season.Ripped); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// RemoveSeason deletes a season and its episodes.
func (s *Store) RemoveSeason(ctx context.Context, program string, season int) error {
	stored, err := s.ResolveProgram(ctx, program)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx, "DELETE FROM seasons WHERE program = ? AND season = ?", stored, season)
	if err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("season %d of %q %w", season, stored, ErrNotFound)
	}
	return nil
}

func (s *Store) seasonExists(ctx context.Context, program string, season int) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM seasons WHERE program = ? AND season = ?", program, season).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check season: %w", err)
	}
	return count > 0, nil
}

// requireSeason resolves program and confirms season exists.
func (s *Store) requireSeason(ctx context.Context, program string, season int) (string, error) {
	stored, err := s.ResolveProgram(ctx, program)
	if err != nil {
		return "", err
	}
	ok, err := s.seasonExists(ctx, stored, season)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("season %d of %q %w", season, stored, ErrNotFound)
	}
	return stored, nil
}
