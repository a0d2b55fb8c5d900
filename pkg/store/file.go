package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// FileStore keeps one JSON document per key in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store rooted at baseDir.
// If baseDir is empty, the current directory is used.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) diagramPath(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, key string) (model.Diagram, error) {
	if err := errors.ValidateStoreKey(key); err != nil {
		return model.Diagram{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.diagramPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Diagram{}, notFound(key)
		}
		return model.Diagram{}, fmt.Errorf("read diagram file: %w", err)
	}
	return pkgio.Unmarshal(data)
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, key string, d model.Diagram) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(d, &buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.diagramPath(key), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write diagram file: %w", err)
	}
	return nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.diagramPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove diagram file: %w", err)
	}
	return nil
}

// List implements Store. Files whose names are not valid keys are skipped.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	keys := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		key := strings.TrimSuffix(entry.Name(), ".json")
		if errors.ValidateStoreKey(key) != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory diagrams are stored in.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
