package state

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecordGeneration_FillsDefaults(t *testing.T) {
	db := setupTestDB(t)

	g := &Generation{
		Path:       "/tmp/file.xlsx",
		Sheets:     []string{"Sample Sheet", "_2024_03_05_140709"},
		TableSheet: "_2024_03_05_140709",
		Rows:       2,
	}
	if err := db.RecordGeneration(g); err != nil {
		t.Fatalf("RecordGeneration failed: %v", err)
	}

	if _, err := uuid.Parse(g.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", g.ID, err)
	}
	if g.Source != SourceBuiltin {
		t.Errorf("Source = %q, want %q", g.Source, SourceBuiltin)
	}
	if g.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestGetGeneration(t *testing.T) {
	db := setupTestDB(t)
	created := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	want := &Generation{
		ID:         "gen-1",
		Path:       "/tmp/file.xlsx",
		Sheets:     []string{"Sample Sheet", "_2024_03_05_140709"},
		TableSheet: "_2024_03_05_140709",
		Rows:       2,
		Source:     "/data/employees.yaml",
		CreatedAt:  created,
	}
	if err := db.RecordGeneration(want); err != nil {
		t.Fatalf("RecordGeneration failed: %v", err)
	}

	got, err := db.GetGeneration("gen-1")
	if err != nil {
		t.Fatalf("GetGeneration failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetGeneration returned nil")
	}

	if got.Path != want.Path || got.TableSheet != want.TableSheet || got.Rows != want.Rows || got.Source != want.Source {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.Sheets) != 2 || got.Sheets[0] != "Sample Sheet" || got.Sheets[1] != "_2024_03_05_140709" {
		t.Errorf("Sheets = %v, want %v", got.Sheets, want.Sheets)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestGetGeneration_NotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetGeneration("missing")
	if err != nil {
		t.Fatalf("GetGeneration failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestRecordGeneration_DuplicateID(t *testing.T) {
	db := setupTestDB(t)

	g := &Generation{ID: "dup", Path: "/tmp/a.xlsx"}
	if err := db.RecordGeneration(g); err != nil {
		t.Fatalf("first RecordGeneration failed: %v", err)
	}
	if err := db.RecordGeneration(&Generation{ID: "dup", Path: "/tmp/b.xlsx"}); err == nil {
		t.Error("expected error recording duplicate id")
	}
}

func TestListGenerations(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		g := &Generation{ID: id, Path: "/tmp/" + id + ".xlsx", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := db.RecordGeneration(g); err != nil {
			t.Fatalf("RecordGeneration(%s) failed: %v", id, err)
		}
	}

	all, err := db.ListGenerations(0)
	if err != nil {
		t.Fatalf("ListGenerations failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 generations, got %d", len(all))
	}
	if all[0].ID != "third" || all[2].ID != "first" {
		t.Errorf("expected newest first, got %s..%s", all[0].ID, all[2].ID)
	}

	limited, err := db.ListGenerations(2)
	if err != nil {
		t.Fatalf("ListGenerations(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "third" || limited[1].ID != "second" {
		t.Errorf("unexpected limited list: %+v", limited)
	}
}

func TestListGenerations_Empty(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.ListGenerations(10)
	if err != nil {
		t.Fatalf("ListGenerations failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no generations, got %d", len(got))
	}
}

func TestDeleteGeneration(t *testing.T) {
	db := setupTestDB(t)

	if err := db.RecordGeneration(&Generation{ID: "gone", Path: "/tmp/a.xlsx"}); err != nil {
		t.Fatalf("RecordGeneration failed: %v", err)
	}
	if err := db.DeleteGeneration("gone"); err != nil {
		t.Fatalf("DeleteGeneration failed: %v", err)
	}

	got, err := db.GetGeneration("gone")
	if err != nil {
		t.Fatalf("GetGeneration failed: %v", err)
	}
	if got != nil {
		t.Error("generation still present after delete")
	}

	if err := db.DeleteGeneration("gone"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows deleting twice, got %v", err)
	}
}

func TestPurgeOldGenerations(t *testing.T) {
	db := setupTestDB(t)

	old := &Generation{ID: "old", Path: "/tmp/old.xlsx", CreatedAt: time.Now().Add(-48 * time.Hour)}
	recent := &Generation{ID: "recent", Path: "/tmp/new.xlsx", CreatedAt: time.Now()}
	for _, g := range []*Generation{old, recent} {
		if err := db.RecordGeneration(g); err != nil {
			t.Fatalf("RecordGeneration failed: %v", err)
		}
	}

	n, err := db.PurgeOldGenerations(24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOldGenerations failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}

	remaining, err := db.ListGenerations(0)
	if err != nil {
		t.Fatalf("ListGenerations failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "recent" {
		t.Errorf("unexpected remaining generations: %+v", remaining)
	}
}
