// Package store holds the remote-backed state of the food list and the mutation
// gateway that changes it.
package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"foodctl/internal/api"
	"foodctl/internal/model"
	"foodctl/internal/notify"
)

// Lister fetches the full food list.
type Lister interface {
	List(ctx context.Context) ([]model.FoodRecord, error)
}

// FoodsState is a snapshot of the store.
type FoodsState struct {
	Items     []model.FoodRecord
	IsLoading bool
	// Err is the user-facing message of the last failed load, or "".
	Err string
}

// FetchError is returned when a list load fails.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

// ErrStale is returned by Load when a newer load started before this one settled.
// The state was left to the newer load.
var ErrStale = errors.New("stale load discarded")

// FoodStore is the source of truth for the displayed list.
type FoodStore struct {
	lister   Lister
	notifier notify.Notifier
	logger   *slog.Logger

	mu    sync.Mutex
	state FoodsState
	seq   uint64
}

// NewFoodStore creates a store in the loading state with an empty list. The caller
// triggers the first Load.
func NewFoodStore(lister Lister, notifier notify.Notifier, logger *slog.Logger) *FoodStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FoodStore{
		lister:   lister,
		notifier: notifier,
		logger:   logger.With("component", "foods"),
		state:    FoodsState{Items: []model.FoodRecord{}, IsLoading: true},
	}
}

// State returns a copy of the current state.
func (s *FoodStore) State() FoodsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *FoodStore) snapshot() FoodsState {
	st := s.state
	st.Items = append([]model.FoodRecord(nil), s.state.Items...)
	if st.Items == nil {
		st.Items = []model.FoodRecord{}
	}
	return st
}

// Load fetches the list and replaces the state. On failure the list is cleared, Err is set
// and one error notification is sent. If another Load starts before this one settles,
// this one's result is dropped and ErrStale is returned with the then-current state.
func (s *FoodStore) Load(ctx context.Context) (FoodsState, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state.IsLoading = true
	s.state.Err = ""
	s.mu.Unlock()

	items, err := s.lister.List(ctx)

	s.mu.Lock()
	if seq != s.seq {
		st := s.snapshot()
		s.mu.Unlock()
		s.logger.Debug("discarding stale load", "seq", seq)
		return st, ErrStale
	}
	s.state.IsLoading = false
	if err != nil {
		msg := api.ErrorMessage(err)
		s.state.Items = []model.FoodRecord{}
		s.state.Err = msg
		st := s.snapshot()
		s.mu.Unlock()

		s.logger.Error("failed to load food items", "error", err)
		notify.Error(s.notifier, "Failed to load food items: "+msg)
		return st, &FetchError{Message: msg, Err: err}
	}
	if items == nil {
		items = []model.FoodRecord{}
	}
	s.state.Items = items
	st := s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("loaded food items", "count", len(items))
	return st, nil
}

// Refetch reloads the list. It is the hook mutations call after a success.
func (s *FoodStore) Refetch(ctx context.Context) (FoodsState, error) {
	return s.Load(ctx)
}
