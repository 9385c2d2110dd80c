// Package form is the add/edit state machine behind the food form.
package form

import (
	"context"

	"foodctl/internal/food"
	"foodctl/internal/model"
)

// State is the form lifecycle state.
type State int

const (
	StateClosed State = iota
	StateCreate
	StateEdit
)

func (s State) String() string {
	switch s {
	case StateCreate:
		return "create"
	case StateEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Saver is the part of the mutation gateway the form submits to.
type Saver interface {
	Create(ctx context.Context, sub model.FoodFormSubmission) (model.FoodRecord, error)
	Update(ctx context.Context, id string, sub model.FoodFormSubmission) (model.FoodRecord, error)
}

// Controller owns a draft copy of one record. Editing the draft never touches the list.
type Controller struct {
	state  State
	target *model.FoodRecord
	draft  model.FoodFormDraft
	errors model.ValidationErrors
}

// New returns a closed controller.
func New() *Controller {
	return &Controller{}
}

// Open enters create mode when seed is nil, else edit mode for seed. The draft is reset and
// every error cleared.
func (c *Controller) Open(seed *model.FoodRecord) {
	c.errors = model.ValidationErrors{}
	if seed == nil {
		c.state = StateCreate
		c.target = nil
		c.draft = food.NewDraft()
		return
	}
	rec := *seed
	c.state = StateEdit
	c.target = &rec
	c.draft = food.DraftFromRecord(rec)
}

// Close discards the draft.
func (c *Controller) Close() {
	c.state = StateClosed
	c.target = nil
	c.draft = model.FoodFormDraft{}
	c.errors = model.ValidationErrors{}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) IsOpen() bool { return c.state != StateClosed }

// Target returns the record being edited, or nil in create mode.
func (c *Controller) Target() *model.FoodRecord { return c.target }

func (c *Controller) Draft() model.FoodFormDraft { return c.draft }

// SetDraft replaces the draft. Errors are left until the next submit.
func (c *Controller) SetDraft(d model.FoodFormDraft) { c.draft = d }

func (c *Controller) Errors() model.ValidationErrors { return c.errors }

// Prepare validates the draft, replacing the previous error set. It returns the
// submission and true when the draft is valid.
func (c *Controller) Prepare() (model.FoodFormSubmission, bool) {
	if c.state == StateClosed {
		return model.FoodFormSubmission{}, false
	}
	c.errors = food.Validate(c.draft)
	if !c.errors.Empty() {
		return model.FoodFormSubmission{}, false
	}
	return food.BuildSubmission(c.draft), true
}

// Resolve applies the outcome of a save. Success closes the form; failure sets the general
// error and keeps the draft open for another attempt.
func (c *Controller) Resolve(err error) {
	if err == nil {
		c.Close()
		return
	}
	c.errors = model.ValidationErrors{Fields: c.errors.Fields, General: food.MsgSaveFailed}
}

// Save sends sub through s: an update of target when it is set, else a create. It does not
// touch any Controller, so it can run off the UI goroutine; pass the outcome to Resolve.
func Save(ctx context.Context, s Saver, target *model.FoodRecord, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	if target != nil {
		return s.Update(ctx, target.ID, sub)
	}
	return s.Create(ctx, sub)
}
