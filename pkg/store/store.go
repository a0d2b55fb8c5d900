// Package store persists diagram documents under string keys.
//
// A [Store] holds the same JSON documents that [pkgio.WriteJSON] produces,
// so a diagram can move between a local file and a shared backend without
// conversion. Three backends are provided:
//   - [FileStore]: one <key>.json file per diagram in a directory
//   - [RedisStore]: Redis strings plus an index set of keys
//   - [MongoStore]: one MongoDB document per diagram
//
// [Open] picks a backend from a location string and wraps it so that
// every load and save reports to [observability.Store].
//
// Keys are checked with [errors.ValidateStoreKey] by every backend.
// All implementations are safe for concurrent use.
//
// [pkgio.WriteJSON]: github.com/matzehuels/erdiagram/pkg/io.WriteJSON
// [errors.ValidateStoreKey]: github.com/matzehuels/erdiagram/pkg/errors.ValidateStoreKey
package store

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/matzehuels/erdiagram/pkg/errors"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/observability"
)

// ErrNotFound is returned (wrapped with code DIAGRAM_NOT_FOUND) when no
// diagram is stored under a key.
var ErrNotFound = stderrors.New("diagram not found")

// Store loads and saves diagrams by key.
type Store interface {
	// Load returns the diagram stored under key, or an error wrapping
	// ErrNotFound.
	Load(ctx context.Context, key string) (model.Diagram, error)

	// Save stores d under key, replacing any previous diagram.
	Save(ctx context.Context, key string, d model.Diagram) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend connection.
	Close() error
}

// Open returns the store at location:
//   - "redis://..." or "rediss://..." opens a [RedisStore]
//   - "mongodb://..." or "mongodb+srv://..." opens a [MongoStore]
//   - "file://dir" or a plain directory path opens a [FileStore]
//
// Remote backends are pinged before Open returns; transient connection
// failures are retried with backoff.
func Open(ctx context.Context, location string) (Store, error) {
	if err := errors.ValidateStoreURL(location); err != nil {
		return nil, err
	}
	var (
		s       Store
		backend string
		err     error
	)
	switch {
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		backend = "redis"
		s, err = OpenRedisStore(ctx, location)
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		backend = "mongo"
		s, err = OpenMongoStore(ctx, location)
	default:
		backend = "file"
		s, err = NewFileStore(strings.TrimPrefix(location, "file://"))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s store", backend)
	}
	return &observed{Store: s, backend: backend}, nil
}

// notFound wraps ErrNotFound for key.
func notFound(key string) error {
	return errors.Wrap(errors.ErrCodeDiagramNotFound, ErrNotFound, "load %s", key)
}

// observed reports loads and saves to the store hooks.
type observed struct {
	Store
	backend string
}

func (o *observed) Load(ctx context.Context, key string) (model.Diagram, error) {
	start := time.Now()
	d, err := o.Store.Load(ctx, key)
	observability.Store().OnLoad(ctx, o.backend, key, time.Since(start), err)
	return d, err
}

func (o *observed) Save(ctx context.Context, key string, d model.Diagram) error {
	start := time.Now()
	err := o.Store.Save(ctx, key, d)
	size := len(d.Entities) + len(d.Relationships) + len(d.Notes)
	observability.Store().OnSave(ctx, o.backend, key, size, time.Since(start), err)
	return err
}
