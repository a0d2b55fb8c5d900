package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/observability"
)

func library() model.Diagram {
	reader := model.NewEntity("reader", "Reader", 0, 0)
	reader.Attributes = []model.Attribute{model.NewAttribute("a1", "card", model.Key)}
	book := model.NewEntity("book", "Book", 300, 0)
	borrows := model.NewRelationship("borrows", "Borrows", 150, 100)
	borrows.Connections = []model.Connection{
		{EntityID: "reader", Cardinality: model.ZeroMany},
		{EntityID: "book", Cardinality: model.Many},
	}
	d := model.New("Library")
	d.Entities = []model.Entity{reader, book}
	d.Relationships = []model.Relationship{borrows}
	return d
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "diagrams"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()

	if err := s.Save(ctx, "library", library()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, "archive", model.New("Archive")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "library")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(library()) {
		t.Errorf("Load() = %+v, want the saved diagram", got)
	}

	keys, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"archive", "library"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("List() = %v, want %v", keys, want)
	}

	if err := s.Delete(ctx, "library"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "library"); err != nil {
		t.Errorf("Delete() of a missing key error = %v", err)
	}
	_, err = s.Load(ctx, "library")
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Delete error = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("Load() after Delete code = %v, want %v", errors.GetCode(err), errors.ErrCodeDiagramNotFound)
	}
}

func TestFileStore_List(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	for _, name := range []string{"notes.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	keys, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("List() = %v, want no keys", keys)
	}
}

func TestFileStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := s.Save(ctx, key, library()); !errors.Is(err, errors.ErrCodeInvalidKey) {
			t.Errorf("Save(%q) error = %v, want %v", key, err, errors.ErrCodeInvalidKey)
		}
		if _, err := s.Load(ctx, key); !errors.Is(err, errors.ErrCodeInvalidKey) {
			t.Errorf("Load(%q) error = %v, want %v", key, err, errors.ErrCodeInvalidKey)
		}
	}
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = s.Load(context.Background(), "bad")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load() error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

type countingHooks struct {
	loads, saves int
	backend      string
}

func (h *countingHooks) OnLoad(_ context.Context, backend, _ string, _ time.Duration, _ error) {
	h.loads++
	h.backend = backend
}

func (h *countingHooks) OnSave(_ context.Context, backend, _ string, _ int, _ time.Duration, _ error) {
	h.saves++
	h.backend = backend
}

func TestOpen(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	for _, location := range []string{t.TempDir(), "file://" + t.TempDir()} {
		s, err := Open(ctx, location)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", location, err)
		}
		if err := s.Save(ctx, "library", library()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := s.Load(ctx, "library"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		s.Close()
	}
	if hooks.loads != 2 || hooks.saves != 2 || hooks.backend != "file" {
		t.Errorf("hooks = %+v, want 2 loads and 2 saves on file", hooks)
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "ftp://example.com/diagrams")
	if !errors.Is(err, errors.ErrCodeInvalidURL) {
		t.Errorf("Open() error = %v, want %v", err, errors.ErrCodeInvalidURL)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	boom := stderrors.New("boom")
	tests := []struct {
		name     string
		failures int
		wrap     bool
		wantErr  bool
		wantRuns int
	}{
		{"success", 0, true, false, 1},
		{"recovers", 2, true, false, 3},
		{"gives up", 5, true, true, 3},
		{"not retryable", 5, false, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := 0
			err := retryWithBackoff(context.Background(), func() error {
				runs++
				if runs <= tt.failures {
					if tt.wrap {
						return retryable(boom)
					}
					return boom
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("retryWithBackoff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != boom {
				t.Errorf("retryWithBackoff() error = %v, want the unwrapped cause", err)
			}
			if runs != tt.wantRuns {
				t.Errorf("runs = %d, want %d", runs, tt.wantRuns)
			}
		})
	}
}

func TestRetryWithBackoff_Canceled(t *testing.T) {
	old := retryDelay
	retryDelay = time.Hour
	defer func() { retryDelay = old }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryWithBackoff(ctx, func() error { return retryable(stderrors.New("down")) })
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("retryWithBackoff() error = %v, want context.Canceled", err)
	}
}
