package state

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceBuiltin marks a generation that used the built-in sample rows.
const SourceBuiltin = "builtin"

// sheetSeparator joins sheet names in the sheets column. Excel forbids it
// in sheet names.
const sheetSeparator = "/"

// Generation records one generated workbook.
type Generation struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	Sheets     []string  `json:"sheets"`
	TableSheet string    `json:"table_sheet"`
	Rows       int       `json:"rows"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordGeneration stores g. An empty ID is filled with a new UUID and an
// empty Source with SourceBuiltin.
func (db *DB) RecordGeneration(g *Generation) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Source == "" {
		g.Source = SourceBuiltin
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO generations (id, path, sheets, table_sheet, row_count, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.Path, strings.Join(g.Sheets, sheetSeparator), g.TableSheet, g.Rows, g.Source, formatTime(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}

// GetGeneration retrieves a generation by ID. It returns nil, nil when no
// generation has that ID.
func (db *DB) GetGeneration(id string) (*Generation, error) {
	row := db.QueryRow(`
		SELECT id, path, sheets, table_sheet, row_count, source, created_at
		FROM generations WHERE id = ?
	`, id)

	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}
	return g, nil
}

// ListGenerations returns the most recent generations, newest first.
// A limit of zero or less returns all of them.
func (db *DB) ListGenerations(limit int) ([]Generation, error) {
	query := `
		SELECT id, path, sheets, table_sheet, row_count, source, created_at
		FROM generations ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// DeleteGeneration removes a generation record. The workbook file is left alone.
func (db *DB) DeleteGeneration(id string) error {
	res, err := db.Exec("DELETE FROM generations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete generation %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// PurgeOldGenerations deletes generations older than the specified duration.
// Returns the number of generations deleted.
func (db *DB) PurgeOldGenerations(olderThan time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-olderThan))

	res, err := db.Exec("DELETE FROM generations WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge old generations: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(s scanner) (*Generation, error) {
	var g Generation
	var sheets, createdAt string
	if err := s.Scan(&g.ID, &g.Path, &sheets, &g.TableSheet, &g.Rows, &g.Source, &createdAt); err != nil {
		return nil, err
	}
	if sheets != "" {
		g.Sheets = strings.Split(sheets, sheetSeparator)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = t
	return &g, nil
}
