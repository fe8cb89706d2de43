// Package identity resolves and persists the reader using this device.
// The stored record is treated as an opaque credential: it is resolved once
// and not re-validated per request.
package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/gilleon/book-journal/internal/api"
	"github.com/gilleon/book-journal/internal/validation"
)

// Store persists the local reader identity. Controllers receive a Store
// instead of touching the filesystem so they stay testable.
type Store interface {
	// Load returns the stored identity, or (nil, nil) when none exists.
	Load() (*api.Reader, error)
	Save(reader api.Reader) error
	Clear() error
}

// FileStore keeps the identity in a TOML file, by default
// ~/.config/bookjournal/reader.toml.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored identity. A missing file means no identity, not an
// error.
func (s *FileStore) Load() (*api.Reader, error) {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reader file: %w", err)
	}

	var stored struct {
		ID    int64  `toml:"id"`
		Name  string `toml:"name"`
		Email string `toml:"email"`
	}
	if err := toml.Unmarshal(bytes, &stored); err != nil {
		return nil, fmt.Errorf("parse reader file: %w", err)
	}
	if stored.ID == 0 {
		return nil, nil
	}
	return &api.Reader{ID: stored.ID, Name: stored.Name, Email: stored.Email}, nil
}

// Save writes the identity, creating directories as needed.
func (s *FileStore) Save(reader api.Reader) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create reader dir: %w", err)
	}

	stored := struct {
		ID    int64  `toml:"id"`
		Name  string `toml:"name"`
		Email string `toml:"email"`
	}{ID: reader.ID, Name: reader.Name, Email: reader.Email}

	bytes, err := toml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal reader: %w", err)
	}
	if err := os.WriteFile(s.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write reader file: %w", err)
	}
	return nil
}

// Clear removes the stored identity. Idempotent.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove reader file: %w", err)
	}
	return nil
}

// Resolver turns a name and email into a service-side reader id, persisting
// the result.
type Resolver struct {
	store     Store
	directory api.ReaderDirectory
	validate  *validation.Validator
	log       zerolog.Logger
}

// NewResolver builds a Resolver over the given store and API surface.
func NewResolver(store Store, directory api.ReaderDirectory, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:     store,
		directory: directory,
		validate:  validation.New(),
		log:       logger,
	}
}

// Current returns the persisted identity, if any.
func (r *Resolver) Current() (*api.Reader, error) {
	return r.store.Load()
}

// Resolve looks the reader up by email and falls back to creating one. The
// create path is reached only when the lookup explicitly reports absence, so
// a reader is never duplicated for a known email. The resolved identity is
// persisted before returning.
func (r *Resolver) Resolve(ctx context.Context, name, email string) (*api.Reader, error) {
	payload := api.ReaderPayload{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := r.validate.Validate(payload); err != nil {
		return nil, err
	}

	reader, err := r.directory.FindReaderByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		r.log.Info().Int64("id", reader.ID).Msg("reader found by email")
	case api.IsNotFound(err):
		// Expected outcome, not a failure: this email has no reader yet.
		reader, err = r.directory.CreateReader(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("create reader: %w", err)
		}
		r.log.Info().Int64("id", reader.ID).Msg("reader created")
	default:
		return nil, fmt.Errorf("look up reader: %w", err)
	}

	if err := r.store.Save(*reader); err != nil {
		return nil, fmt.Errorf("persist reader: %w", err)
	}
	return reader, nil
}

// Logout clears the persisted identity.
func (r *Resolver) Logout() error {
	return r.store.Clear()
}
