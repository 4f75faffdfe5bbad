// Package preset stores named snapshots of panel values in SQLite.
package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bnema/knobkit/internal/suggest"
)

// ErrNotFound is returned when no preset has the requested name.
var ErrNotFound = errors.New("preset not found")

// Preset is a named set of widget values.
type Preset struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Values    map[string]float64
}

// Store is a preset database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating it and its directory if
// needed, and brings the schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create preset directory: %w", err)
		}
	}

	if err := migrateUp(path); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open preset database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Save stores values under name, replacing any preset of the same name.
// The preset keeps its ID and creation time when it is replaced.
func (s *Store) Save(ctx context.Context, name string, values map[string]float64) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, errors.New("preset name is empty")
	}

	p := Preset{Name: name, UpdatedAt: now(), Values: make(map[string]float64, len(values))}
	for k, v := range values {
		p.Values[k] = v
	}

	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT id, created_at FROM presets WHERE name = ?`, name,
		).Scan(&p.ID, &p.CreatedAt)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			p.ID = uuid.NewString()
			p.CreatedAt = p.UpdatedAt
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO presets (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
				p.ID, p.Name, p.CreatedAt, p.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert preset: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up preset: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE presets SET updated_at = ? WHERE id = ?`, p.UpdatedAt, p.ID,
			); err != nil {
				return fmt.Errorf("failed to update preset: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM preset_values WHERE preset_id = ?`, p.ID,
			); err != nil {
				return fmt.Errorf("failed to clear preset values: %w", err)
			}
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO preset_values (preset_id, widget, value) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for widget, value := range p.Values {
			if _, err := stmt.ExecContext(ctx, p.ID, widget, value); err != nil {
				return fmt.Errorf("failed to store value %q: %w", widget, err)
			}
		}
		return nil
	})
	if err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Load returns the preset called name. A missing preset yields an error
// wrapping ErrNotFound that names the closest existing preset, if any.
func (s *Store) Load(ctx context.Context, name string) (Preset, error) {
	p := Preset{Name: name, Values: map[string]float64{}}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM presets WHERE name = ?`, name,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, s.notFound(ctx, name)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("failed to load preset: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT widget, value FROM preset_values WHERE preset_id = ?`, p.ID)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to load preset values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var widget string
		var value float64
		if err := rows.Scan(&widget, &value); err != nil {
			return Preset{}, err
		}
		p.Values[widget] = value
	}
	return p, rows.Err()
}

// List returns every preset, without values, ordered by name.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Names returns the preset names in order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	presets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the preset called name and its values.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return s.notFound(ctx, name)
	}
	return nil
}

func (s *Store) notFound(ctx context.Context, name string) error {
	names, err := s.Names(ctx)
	if err == nil {
		if match, ok := suggest.Closest(name, names); ok {
			return fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, name, match)
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}
