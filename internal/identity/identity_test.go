package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilleon/book-journal/internal/api"
)

type fakeDirectory struct {
	byEmail   map[string]*api.Reader
	lookupErr error
	created   []api.ReaderPayload
	nextID    int64
}

func (f *fakeDirectory) FindReaderByEmail(_ context.Context, email string) (*api.Reader, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if reader, ok := f.byEmail[email]; ok {
		dup := *reader
		return &dup, nil
	}
	return nil, &api.StatusError{Status: 404, StatusText: "Not Found"}
}

func (f *fakeDirectory) CreateReader(_ context.Context, payload api.ReaderPayload) (*api.Reader, error) {
	f.created = append(f.created, payload)
	f.nextID++
	return &api.Reader{ID: f.nextID, Name: payload.Name, Email: payload.Email}, nil
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "reader.toml"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file means no identity")

	require.NoError(t, store.Save(api.Reader{ID: 7, Name: "Ada", Email: "a@x.com"}))
	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, api.Reader{ID: 7, Name: "Ada", Email: "a@x.com"}, *loaded)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clear is idempotent")
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestResolve_LookupHitNeverCreates(t *testing.T) {
	store := newTestStore(t)
	directory := &fakeDirectory{byEmail: map[string]*api.Reader{
		"ada@example.com": {ID: 7, Name: "Ada", Email: "ada@example.com"},
	}}
	resolver := NewResolver(store, directory, zerolog.Nop())

	reader, err := resolver.Resolve(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reader.ID)
	assert.Empty(t, directory.created, "lookup success must not reach the create path")

	persisted, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, int64(7), persisted.ID)
}

func TestResolve_NotFoundFallsBackToCreate(t *testing.T) {
	store := newTestStore(t)
	directory := &fakeDirectory{byEmail: map[string]*api.Reader{}, nextID: 6}
	resolver := NewResolver(store, directory, zerolog.Nop())

	reader, err := resolver.Resolve(context.Background(), "Ada", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reader.ID)
	require.Len(t, directory.created, 1)
	assert.Equal(t, api.ReaderPayload{Name: "Ada", Email: "a@x.com"}, directory.created[0])

	persisted, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, int64(7), persisted.ID, "stored identity carries the created id")
}

func TestResolve_GenuineLookupFailureDoesNotCreate(t *testing.T) {
	store := newTestStore(t)
	directory := &fakeDirectory{lookupErr: &api.StatusError{Status: 500, StatusText: "Internal Server Error"}}
	resolver := NewResolver(store, directory, zerolog.Nop())

	_, err := resolver.Resolve(context.Background(), "Ada", "a@x.com")
	require.Error(t, err)
	assert.Empty(t, directory.created, "a 500 is not a not-found; the create path must not run")

	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, persisted)
}

func TestResolve_TransportFailureSurfaces(t *testing.T) {
	resolver := NewResolver(newTestStore(t), &fakeDirectory{lookupErr: errors.New("dial tcp: connection refused")}, zerolog.Nop())
	_, err := resolver.Resolve(context.Background(), "Ada", "a@x.com")
	assert.ErrorContains(t, err, "look up reader")
}

func TestResolve_RejectsInvalidInput(t *testing.T) {
	directory := &fakeDirectory{}
	resolver := NewResolver(newTestStore(t), directory, zerolog.Nop())

	_, err := resolver.Resolve(context.Background(), "", "a@x.com")
	assert.ErrorContains(t, err, "name is required")

	_, err = resolver.Resolve(context.Background(), "Ada", "not-an-email")
	assert.ErrorContains(t, err, "email must be a valid email address")
	assert.Empty(t, directory.created)
}

func TestLogout_ClearsStoredIdentity(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(api.Reader{ID: 7, Name: "Ada", Email: "a@x.com"}))
	resolver := NewResolver(store, &fakeDirectory{}, zerolog.Nop())

	require.NoError(t, resolver.Logout())
	current, err := resolver.Current()
	require.NoError(t, err)
	assert.Nil(t, current)
}
