package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/mindely/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "mindely.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return st
}

func deepWork(created time.Time) model.CustomMethod {
	return model.CustomMethod{
		StudyMethod: model.StudyMethod{
			ID:           "deep-work",
			Title:        "Deep Work",
			Description:  "Long uninterrupted blocks.",
			HowItWorks:   []string{"Silence notifications", "Work for 90 minutes"},
			BestFor:      []string{"Projects"},
			Icon:         "✎",
			HasTimer:     true,
			FocusMinutes: 90,
			BreakMinutes: 15,
		},
		CreatedAt: created,
	}
}

func TestSaveAndListMethods(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := st.SaveMethod(ctx, deepWork(created)); err != nil {
		t.Fatalf("save: %v", err)
	}
	reading := model.CustomMethod{
		StudyMethod: model.StudyMethod{ID: "reading", Title: "Reading"},
		CreatedAt:   created.Add(time.Hour),
	}
	if err := st.SaveMethod(ctx, reading); err != nil {
		t.Fatalf("save: %v", err)
	}

	methods, err := st.ListMethods(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	got := methods[0]
	if got.ID != "deep-work" || !got.Custom || !got.HasTimer || got.FocusMinutes != 90 || got.BreakMinutes != 15 {
		t.Fatalf("unexpected method: %+v", got)
	}
	if len(got.HowItWorks) != 2 || got.HowItWorks[1] != "Work for 90 minutes" {
		t.Fatalf("unexpected steps: %#v", got.HowItWorks)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
	if methods[1].HowItWorks != nil || methods[1].BestFor != nil {
		t.Fatalf("expected empty lists, got %#v / %#v", methods[1].HowItWorks, methods[1].BestFor)
	}
}

func TestSaveMethodReplacesAndKeepsCreatedAt(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := st.SaveMethod(ctx, deepWork(created)); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated := deepWork(created.Add(24 * time.Hour))
	updated.FocusMinutes = 60
	if err := st.SaveMethod(ctx, updated); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.GetMethod(ctx, "deep-work")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FocusMinutes != 60 {
		t.Fatalf("expected updated focus, got %d", got.FocusMinutes)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at to be kept, got %v", got.CreatedAt)
	}
}

func TestDeleteMethod(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveMethod(ctx, deepWork(time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.DeleteMethod(ctx, "deep-work"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeleteMethod(ctx, "deep-work"); !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("expected ErrMethodNotFound, got %v", err)
	}
	if _, err := st.GetMethod(ctx, "deep-work"); !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("expected ErrMethodNotFound, got %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindely.db")
	for i := 0; i < 2; i++ {
		st, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := st.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}
