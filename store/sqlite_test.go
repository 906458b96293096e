package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbolis/online-survey/database"
	"github.com/mbolis/online-survey/model"
)

func openSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "surveys.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLite(db)
}

func TestSQLiteCreateAndList(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	fixed := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	created, err := s.Create(ctx, model.Fields{
		"title":       "Customer Feedback",
		"description": "Q3 survey",
		"questions":   []any{"How satisfied are you?"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}

	second, err := s.Create(ctx, model.Fields{"title": "Second"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != 2 {
		t.Errorf("ID = %d, want 2", second.ID)
	}

	surveys, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(surveys) != 2 {
		t.Fatalf("len = %d, want 2", len(surveys))
	}
	got := surveys[0]
	if got.ID != 1 || got.Title() != "Customer Feedback" || got.Fields["description"] != "Q3 survey" {
		t.Errorf("surveys[0] = %+v", got)
	}
	if qs, ok := got.Fields["questions"].([]any); !ok || len(qs) != 1 || qs[0] != "How satisfied are you?" {
		t.Errorf("questions = %#v", got.Fields["questions"])
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, fixed)
	}
	if surveys[1].Title() != "Second" {
		t.Errorf("surveys[1] = %+v", surveys[1])
	}
}

func TestSQLiteCreateRejectsMissingTitle(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	_, err := s.Create(ctx, model.Fields{"description": "no title"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	surveys, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(surveys) != 0 {
		t.Errorf("len = %d, want 0", len(surveys))
	}
}

func TestSQLiteInMemoryDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	s := NewSQLite(db)

	for _, title := range []string{"One", "Two", "Three"} {
		if _, err := s.Create(ctx, model.Fields{"title": title}); err != nil {
			t.Fatal(err)
		}
	}

	surveys, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(surveys) != 3 || surveys[2].ID != 3 || surveys[2].Title() != "Three" {
		t.Errorf("surveys = %v", surveys)
	}
}
