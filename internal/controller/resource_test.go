package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64
	Name string
}

type widgetForm struct {
	Name string
}

// widgetStore is an in-memory backend for exercising the generic controller.
type widgetStore struct {
	mu      sync.Mutex
	items   []widget
	nextID  int64
	listErr error
	saveErr error
	lists   int
}

func (s *widgetStore) list(context.Context) ([]widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	dup := make([]widget, len(s.items))
	copy(dup, s.items)
	return dup, nil
}

func (s *widgetStore) create(_ context.Context, form widgetForm) (*widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.nextID++
	item := widget{ID: s.nextID, Name: form.Name}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *widgetStore) update(_ context.Context, id int64, form widgetForm) (*widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = form.Name
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("widget %d not found", id)
}

func (s *widgetStore) delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("widget %d not found", id)
}

func newWidgetController(store *widgetStore) *Resource[widget, widgetForm] {
	return NewResource(Config[widget, widgetForm]{
		Name:        "widgets",
		List:        store.list,
		Create:      store.create,
		Update:      store.update,
		Delete:      store.delete,
		InitialForm: func() widgetForm { return widgetForm{} },
		FormOf:      func(w widget) widgetForm { return widgetForm{Name: w.Name} },
		IDOf:        func(w widget) int64 { return w.ID },
		Logger:      zerolog.Nop(),
	})
}

func TestFetchAll_ReplacesItemsWholesale(t *testing.T) {
	store := &widgetStore{items: []widget{{ID: 1, Name: "alpha"}}}
	ctrl := newWidgetController(store)

	require.NoError(t, ctrl.FetchAll(context.Background()))
	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "alpha", snap.Items[0].Name)
}

func TestFetchAll_FailureKeepsItemsAndSetsError(t *testing.T) {
	store := &widgetStore{items: []widget{{ID: 1, Name: "alpha"}}}
	ctrl := newWidgetController(store)
	require.NoError(t, ctrl.FetchAll(context.Background()))

	store.listErr = errors.New("connection refused")
	require.Error(t, ctrl.FetchAll(context.Background()))

	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading, "loading must clear even on failure")
	assert.Contains(t, snap.Err, "failed to fetch widgets")
	require.Len(t, snap.Items, 1, "prior collection stays intact")
}

func TestFetchAll_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	ctrl := NewResource(Config[widget, widgetForm]{
		Name: "widgets",
		List: func(context.Context) ([]widget, error) {
			mu.Lock()
			calls++
			call := calls
			mu.Unlock()
			if call == 1 {
				<-release
				return []widget{{ID: 1, Name: "stale"}}, nil
			}
			return []widget{{ID: 2, Name: "fresh"}}, nil
		},
		Create:      func(context.Context, widgetForm) (*widget, error) { return nil, nil },
		Update:      func(context.Context, int64, widgetForm) (*widget, error) { return nil, nil },
		Delete:      func(context.Context, int64) error { return nil },
		InitialForm: func() widgetForm { return widgetForm{} },
		FormOf:      func(w widget) widgetForm { return widgetForm{Name: w.Name} },
		IDOf:        func(w widget) int64 { return w.ID },
		Logger:      zerolog.Nop(),
	})

	done := make(chan struct{})
	go func() {
		_ = ctrl.FetchAll(context.Background())
		close(done)
	}()

	// Wait until the first fetch is in flight, then issue a superseding one.
	for {
		mu.Lock()
		started := calls >= 1
		mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, ctrl.FetchAll(context.Background()))
	close(release)
	<-done

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "fresh", snap.Items[0].Name, "stale response must not overwrite the newer one")
	assert.False(t, snap.Loading)
}

func TestOpenAddResetsFormAndOpensModal(t *testing.T) {
	ctrl := newWidgetController(&widgetStore{})
	ctrl.UpdateForm(func(f *widgetForm) { f.Name = "leftover" })

	ctrl.OpenAdd()
	snap := ctrl.Snapshot()
	assert.True(t, snap.ShowModal)
	assert.False(t, snap.Mode.IsEditing())
	assert.Equal(t, widgetForm{}, snap.Form)
}

func TestOpenEditCopiesFieldsAndSetsMode(t *testing.T) {
	ctrl := newWidgetController(&widgetStore{})

	ctrl.OpenEdit(widget{ID: 5, Name: "beta"})
	snap := ctrl.Snapshot()
	assert.True(t, snap.ShowModal)
	id, editing := snap.Mode.EditingID()
	require.True(t, editing)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "beta", snap.Form.Name)
}

func TestSubmit_CreateRoundTrip(t *testing.T) {
	store := &widgetStore{}
	ctrl := newWidgetController(store)

	ctrl.OpenAdd()
	ctrl.UpdateForm(func(f *widgetForm) { f.Name = "gamma" })
	require.NoError(t, ctrl.Submit(context.Background()))

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "gamma", snap.Items[0].Name, "refetched collection contains the submitted form")
	assert.False(t, snap.ShowModal)
	assert.Equal(t, widgetForm{}, snap.Form, "form resets on success")
}

func TestSubmit_EditUsesUpdate(t *testing.T) {
	store := &widgetStore{items: []widget{{ID: 1, Name: "old"}}, nextID: 1}
	ctrl := newWidgetController(store)
	require.NoError(t, ctrl.FetchAll(context.Background()))

	ctrl.OpenEdit(store.items[0])
	ctrl.UpdateForm(func(f *widgetForm) { f.Name = "new" })
	require.NoError(t, ctrl.Submit(context.Background()))

	snap := ctrl.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "new", snap.Items[0].Name)
	assert.False(t, snap.Mode.IsEditing())
}

func TestSubmit_FailureLeavesModalOpenForRetry(t *testing.T) {
	store := &widgetStore{saveErr: errors.New("500 Internal Server Error")}
	ctrl := newWidgetController(store)

	ctrl.OpenAdd()
	ctrl.UpdateForm(func(f *widgetForm) { f.Name = "gamma" })
	require.Error(t, ctrl.Submit(context.Background()))

	snap := ctrl.Snapshot()
	assert.True(t, snap.ShowModal, "modal stays open so the user can retry")
	assert.Equal(t, "gamma", snap.Form.Name, "form keeps its contents")
	assert.Contains(t, snap.Err, "failed to create widgets")
}

func TestDeleteFlow(t *testing.T) {
	store := &widgetStore{items: []widget{{ID: 1, Name: "alpha"}, {ID: 2, Name: "beta"}}, nextID: 2}
	ctrl := newWidgetController(store)
	require.NoError(t, ctrl.FetchAll(context.Background()))

	ctrl.RequestDelete(2)
	snap := ctrl.Snapshot()
	require.True(t, snap.HasConfirmDelete)
	assert.Equal(t, int64(2), snap.ConfirmDeleteID)
	require.Len(t, store.items, 2, "requesting delete has no side effects")

	require.NoError(t, ctrl.ConfirmDelete(context.Background()))
	snap = ctrl.Snapshot()
	assert.False(t, snap.HasConfirmDelete)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(1), snap.Items[0].ID)
}

func TestConfirmDelete_FailureKeepsConfirmation(t *testing.T) {
	store := &widgetStore{items: []widget{{ID: 1, Name: "alpha"}}, nextID: 1}
	ctrl := newWidgetController(store)
	require.NoError(t, ctrl.FetchAll(context.Background()))

	store.saveErr = errors.New("boom")
	ctrl.RequestDelete(1)
	require.Error(t, ctrl.ConfirmDelete(context.Background()))

	snap := ctrl.Snapshot()
	assert.True(t, snap.HasConfirmDelete)
	assert.Contains(t, snap.Err, "failed to delete widgets")
	require.Len(t, snap.Items, 1)
}

func TestConfirmDelete_NoPendingIsNoOp(t *testing.T) {
	store := &widgetStore{items: []widget{{ID: 1}}}
	ctrl := newWidgetController(store)
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))
	require.Len(t, store.items, 1)
}

func TestCancelDeleteAndCloseModalAreIdempotent(t *testing.T) {
	ctrl := newWidgetController(&widgetStore{})

	ctrl.RequestDelete(3)
	ctrl.CancelDelete()
	before := ctrl.Snapshot()
	ctrl.CancelDelete()
	assert.Equal(t, before, ctrl.Snapshot())

	ctrl.OpenAdd()
	ctrl.CloseModal()
	before = ctrl.Snapshot()
	ctrl.CloseModal()
	assert.Equal(t, before, ctrl.Snapshot())
	assert.False(t, before.ShowModal)
}

func TestClearError(t *testing.T) {
	store := &widgetStore{listErr: errors.New("down")}
	ctrl := newWidgetController(store)
	_ = ctrl.FetchAll(context.Background())
	require.NotEmpty(t, ctrl.Snapshot().Err)

	ctrl.ClearError()
	assert.Empty(t, ctrl.Snapshot().Err)
}
