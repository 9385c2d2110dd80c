package store

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"foodctl/internal/api"
	"foodctl/internal/model"
	"foodctl/internal/notify"
)

// Mutator performs remote writes.
type Mutator interface {
	Create(ctx context.Context, sub model.FoodFormSubmission) (model.FoodRecord, error)
	Update(ctx context.Context, id string, sub model.FoodFormSubmission) (model.FoodRecord, error)
	Delete(ctx context.Context, id string) error
}

// Mutation operations, as reported in MutationError.Op.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// MutationError is returned when a create, update or delete fails.
type MutationError struct {
	Op      string
	Message string
	Err     error
}

func (e *MutationError) Error() string { return e.Message }

func (e *MutationError) Unwrap() error { return e.Err }

// MutationGateway sends writes to the API and reports their outcome. The busy flag is
// shared by all operations.
type MutationGateway struct {
	client    Mutator
	notifier  notify.Notifier
	onSuccess func()
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight int
	err      string
}

// NewMutationGateway creates a gateway. onSuccess runs after every successful mutation,
// typically to request a list refetch; it may be nil.
func NewMutationGateway(client Mutator, notifier notify.Notifier, onSuccess func(), logger *slog.Logger) *MutationGateway {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MutationGateway{
		client:    client,
		notifier:  notifier,
		onSuccess: onSuccess,
		logger:    logger.With("component", "mutations"),
	}
}

// IsLoading reports whether any mutation is in flight.
func (g *MutationGateway) IsLoading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight > 0
}

// Err returns the message of the last failed mutation, cleared when a new one starts.
func (g *MutationGateway) Err() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *MutationGateway) begin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight++
	g.err = ""
}

func (g *MutationGateway) end() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight--
}

func (g *MutationGateway) fail(op string, err error) *MutationError {
	msg := api.ErrorMessage(err)
	g.mu.Lock()
	g.err = msg
	g.mu.Unlock()
	g.logger.Error("mutation failed", "op", op, "error", err)
	return &MutationError{Op: op, Message: msg, Err: err}
}

func (g *MutationGateway) succeeded() {
	if g.onSuccess != nil {
		g.onSuccess()
	}
}

// Create adds a food item.
func (g *MutationGateway) Create(ctx context.Context, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	g.begin()
	defer g.end()

	created, err := g.client.Create(ctx, sub)
	if err != nil {
		mErr := g.fail(OpCreate, err)
		notify.Error(g.notifier, "Failed to add food item: "+mErr.Message)
		return model.FoodRecord{}, mErr
	}
	notify.Success(g.notifier, "Food item added successfully!")
	g.logger.Info("food item created", "id", created.ID)
	g.succeeded()
	return created, nil
}

// Update replaces the food item id.
func (g *MutationGateway) Update(ctx context.Context, id string, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	g.begin()
	defer g.end()

	updated, err := g.client.Update(ctx, id, sub)
	if err != nil {
		mErr := g.fail(OpUpdate, err)
		notify.Error(g.notifier, "Failed to update food item: "+mErr.Message)
		return model.FoodRecord{}, mErr
	}
	notify.Success(g.notifier, "Food item updated successfully!")
	g.logger.Info("food item updated", "id", id)
	g.succeeded()
	return updated, nil
}

// Delete removes the food item id. It sends no notifications; the caller reports progress
// and outcome.
func (g *MutationGateway) Delete(ctx context.Context, id string) error {
	g.begin()
	defer g.end()

	if err := g.client.Delete(ctx, id); err != nil {
		return g.fail(OpDelete, err)
	}
	g.logger.Info("food item deleted", "id", id)
	g.succeeded()
	return nil
}
