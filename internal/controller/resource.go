package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// UpdateMethod selects how an edit submit reaches the service.
type UpdateMethod string

const (
	MethodPut   UpdateMethod = "PUT"
	MethodPatch UpdateMethod = "PATCH"
)

// Mode says whether the form buffer targets a new item or an existing one.
// It is the single source of truth for the form's mode; there is no separate
// "is editing" flag to drift from it.
type Mode struct {
	id      int64
	editing bool
}

// CreateMode targets a new item.
func CreateMode() Mode { return Mode{} }

// EditMode targets the item with the given id.
func EditMode(id int64) Mode { return Mode{id: id, editing: true} }

// EditingID returns the targeted id when the mode is an edit.
func (m Mode) EditingID() (int64, bool) { return m.id, m.editing }

// IsEditing reports whether the mode targets an existing item.
func (m Mode) IsEditing() bool { return m.editing }

// Config wires a Resource controller to one collection endpoint. List,
// Create, Update, and Delete are required; Patch is optional and falls back
// to Update when absent.
type Config[T any, F any] struct {
	// Name labels the collection in error messages and logs ("books").
	Name string

	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, form F) (*T, error)
	Update func(ctx context.Context, id int64, form F) (*T, error)
	// Patch submits only the fields that changed between prev and next.
	Patch  func(ctx context.Context, id int64, prev, next F) (*T, error)
	Delete func(ctx context.Context, id int64) error

	InitialForm func() F
	FormOf      func(item T) F
	IDOf        func(item T) int64

	Logger zerolog.Logger
}

// Resource owns the list of one entity collection plus the add/edit form and
// delete-confirmation state driving it. It is safe for concurrent use: the
// UI event loop reads snapshots while operations run in the background, in
// the manner of a producer/consumer snapshot store.
//
// The server stays the source of truth: every successful mutation refetches
// the whole collection rather than splicing items locally, so a failure can
// never leave the list half-updated.
type Resource[T any, F any] struct {
	mu  sync.RWMutex
	cfg Config[T, F]

	items   []T
	loading bool
	err     string

	form     F
	prevForm F
	mode     Mode
	method   UpdateMethod

	showModal       bool
	confirmDeleteID int64
	confirmDelete   bool

	// fetchGen orders list fetches; a response is discarded when a newer
	// fetch was issued while it was in flight.
	fetchGen uint64
}

// Snapshot is an immutable view of a Resource at a point in time.
type Snapshot[T any, F any] struct {
	Items   []T
	Loading bool
	Err     string

	Form         F
	Mode         Mode
	UpdateMethod UpdateMethod
	ShowModal    bool

	ConfirmDeleteID  int64
	HasConfirmDelete bool
}

// NewResource builds a controller around cfg. The first FetchAll is the
// caller's responsibility so it can run as a background command.
func NewResource[T any, F any](cfg Config[T, F]) *Resource[T, F] {
	return &Resource[T, F]{
		cfg:    cfg,
		form:   cfg.InitialForm(),
		method: MethodPut,
	}
}

// FetchAll replaces the collection with the server's current state. The
// loading flag is set for the duration and always cleared on the response
// that is still current; superseded responses are dropped without touching
// state.
func (r *Resource[T, F]) FetchAll(ctx context.Context) error {
	r.mu.Lock()
	r.loading = true
	r.err = ""
	r.fetchGen++
	gen := r.fetchGen
	r.mu.Unlock()

	items, err := r.cfg.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.fetchGen {
		// A newer fetch owns the loading flag now.
		return nil
	}
	r.loading = false
	if err != nil {
		r.err = fmt.Sprintf("failed to fetch %s: %v", r.cfg.Name, err)
		r.cfg.Logger.Error().Err(err).Str("resource", r.cfg.Name).Msg("fetch failed")
		return err
	}
	r.items = items
	return nil
}

// OpenAdd resets the form to its initial defaults and opens the modal in
// create mode.
func (r *Resource[T, F]) OpenAdd() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.form = r.cfg.InitialForm()
	r.prevForm = r.cfg.InitialForm()
	r.mode = CreateMode()
	r.method = MethodPut
	r.showModal = true
}

// OpenEdit copies item's editable fields into the form and opens the modal
// in edit mode. The copy taken here is what a PATCH submit later diffs
// against.
func (r *Resource[T, F]) OpenEdit(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = EditMode(r.cfg.IDOf(item))
	r.form = r.cfg.FormOf(item)
	r.prevForm = r.cfg.FormOf(item)
	r.showModal = true
}

// UpdateForm applies a typed mutation to the form buffer.
func (r *Resource[T, F]) UpdateForm(mutate func(*F)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mutate(&r.form)
}

// SetUpdateMethod selects PUT or PATCH for the next edit submit.
func (r *Resource[T, F]) SetUpdateMethod(method UpdateMethod) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.method = method
}

// Submit sends the form: POST in create mode, PUT or PATCH in edit mode. On
// success the collection is refetched and the form/modal reset; on failure
// the error is recorded and the modal stays open so the user can retry.
func (r *Resource[T, F]) Submit(ctx context.Context) error {
	r.mu.RLock()
	form, prev, mode, method := r.form, r.prevForm, r.mode, r.method
	r.mu.RUnlock()

	var err error
	verb := "create"
	if id, editing := mode.EditingID(); editing {
		verb = "update"
		if method == MethodPatch && r.cfg.Patch != nil {
			_, err = r.cfg.Patch(ctx, id, prev, form)
		} else {
			_, err = r.cfg.Update(ctx, id, form)
		}
	} else {
		_, err = r.cfg.Create(ctx, form)
	}
	if err != nil {
		r.setError(fmt.Sprintf("failed to %s %s: %v", verb, r.cfg.Name, err))
		r.cfg.Logger.Error().Err(err).Str("resource", r.cfg.Name).Str("op", verb).Msg("submit failed")
		return err
	}

	if err := r.FetchAll(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetFormLocked()
	return nil
}

// RequestDelete opens the delete confirmation for id. No side effects.
func (r *Resource[T, F]) RequestDelete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmDeleteID = id
	r.confirmDelete = true
}

// ConfirmDelete deletes the item under confirmation, refetches the
// collection, and clears the confirmation. Without a pending confirmation it
// is a no-op.
func (r *Resource[T, F]) ConfirmDelete(ctx context.Context) error {
	r.mu.RLock()
	id, pending := r.confirmDeleteID, r.confirmDelete
	r.mu.RUnlock()
	if !pending {
		return nil
	}

	if err := r.cfg.Delete(ctx, id); err != nil {
		r.setError(fmt.Sprintf("failed to delete %s: %v", r.cfg.Name, err))
		r.cfg.Logger.Error().Err(err).Str("resource", r.cfg.Name).Int64("id", id).Msg("delete failed")
		return err
	}

	if err := r.FetchAll(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmDelete = false
	r.confirmDeleteID = 0
	return nil
}

// CancelDelete clears any pending delete confirmation. Idempotent.
func (r *Resource[T, F]) CancelDelete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmDelete = false
	r.confirmDeleteID = 0
}

// CloseModal discards the form buffer and closes the modal. Idempotent.
func (r *Resource[T, F]) CloseModal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetFormLocked()
}

// ClearError clears the recorded error string.
func (r *Resource[T, F]) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = ""
}

// Snapshot returns a copy of the current state for rendering.
func (r *Resource[T, F]) Snapshot() Snapshot[T, F] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot[T, F]{
		Items:            cloneItems(r.items),
		Loading:          r.loading,
		Err:              r.err,
		Form:             r.form,
		Mode:             r.mode,
		UpdateMethod:     r.method,
		ShowModal:        r.showModal,
		ConfirmDeleteID:  r.confirmDeleteID,
		HasConfirmDelete: r.confirmDelete,
	}
}

func (r *Resource[T, F]) setError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = msg
}

func (r *Resource[T, F]) resetFormLocked() {
	r.form = r.cfg.InitialForm()
	r.prevForm = r.cfg.InitialForm()
	r.mode = CreateMode()
	r.method = MethodPut
	r.showModal = false
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
