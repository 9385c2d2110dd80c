package form

import (
	"context"
	"errors"
	"testing"

	"foodctl/internal/food"
	"foodctl/internal/model"
)

type fakeSaver struct {
	creates []model.FoodFormSubmission
	updates map[string]model.FoodFormSubmission
	err     error
}

func (f *fakeSaver) Create(ctx context.Context, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	f.creates = append(f.creates, sub)
	if f.err != nil {
		return model.FoodRecord{}, f.err
	}
	return model.FoodRecord{ID: "new", FoodName: model.FlexString(sub.FoodName)}, nil
}

func (f *fakeSaver) Update(ctx context.Context, id string, sub model.FoodFormSubmission) (model.FoodRecord, error) {
	if f.updates == nil {
		f.updates = map[string]model.FoodFormSubmission{}
	}
	f.updates[id] = sub
	if f.err != nil {
		return model.FoodRecord{}, f.err
	}
	return model.FoodRecord{ID: id, FoodName: model.FlexString(sub.FoodName)}, nil
}

// submit runs the same Prepare, Save and Resolve sequence as the food form.
func submit(c *Controller, s Saver) (model.FoodRecord, bool) {
	sub, ok := c.Prepare()
	if !ok {
		return model.FoodRecord{}, false
	}
	saved, err := Save(context.Background(), s, c.Target(), sub)
	c.Resolve(err)
	return saved, err == nil
}

func fill(c *Controller) {
	d := c.Draft()
	d.FoodName = "Burger"
	d.Rating = "4"
	d.FoodImage = "/img/burger.png"
	d.RestaurantName = "Joe's"
	d.RestaurantLogo = "/logo/joe.png"
	c.SetDraft(d)
}

func TestOpenCreateResetsDraft(t *testing.T) {
	c := New()
	if c.IsOpen() {
		t.Fatal("new controller should be closed")
	}

	c.Open(nil)
	fill(c)
	c.SetDraft(model.FoodFormDraft{FoodName: "junk"})
	c.Prepare()
	if c.Errors().Empty() {
		t.Fatal("expected errors for a junk draft")
	}

	c.Open(nil)
	if c.State() != StateCreate {
		t.Errorf("state = %v", c.State())
	}
	if c.Draft() != food.NewDraft() {
		t.Errorf("draft not reset: %+v", c.Draft())
	}
	if !c.Errors().Empty() {
		t.Errorf("errors not cleared: %+v", c.Errors())
	}
}

func TestOpenEditSeedsFromRecord(t *testing.T) {
	open := false
	rating := model.FlexFloat(3.5)
	rec := model.FoodRecord{
		ID:             "7",
		Name:           "Tacos",
		Rating:         &rating,
		Price:          "8.00",
		FoodImage:      "/img/tacos.png",
		RestaurantName: "Casa",
		Logo:           "/logo/casa.png",
		Open:           &open,
	}

	c := New()
	c.Open(&rec)
	if c.State() != StateEdit || c.Target() == nil || c.Target().ID != "7" {
		t.Fatalf("unexpected state %v target %+v", c.State(), c.Target())
	}
	d := c.Draft()
	if d.FoodName != "Tacos" || d.Rating != "3.5" || d.Price != "8.00" || d.RestaurantLogo != "/logo/casa.png" || d.Status != model.StatusClosed {
		t.Errorf("unexpected draft %+v", d)
	}

	rec.ID = "changed"
	if c.Target().ID != "7" {
		t.Error("target must be a copy of the seed")
	}
}

func TestSubmitInvalidDoesNotSave(t *testing.T) {
	s := &fakeSaver{}
	c := New()
	c.Open(nil)

	if _, ok := submit(c, s); ok {
		t.Fatal("empty draft should not submit")
	}
	if len(s.creates) != 0 {
		t.Error("saver called for invalid draft")
	}
	if !c.IsOpen() {
		t.Error("form must stay open")
	}
	if len(c.Errors().Fields) != 5 {
		t.Errorf("expected 5 field errors, got %v", c.Errors().Fields)
	}
}

func TestSubmitCreateClosesOnSuccess(t *testing.T) {
	s := &fakeSaver{}
	c := New()
	c.Open(nil)
	fill(c)

	saved, ok := submit(c, s)
	if !ok || saved.ID != "new" {
		t.Fatalf("submit = %+v, %v", saved, ok)
	}
	if len(s.creates) != 1 || s.creates[0].Price != food.DefaultPrice || !s.creates[0].Open {
		t.Errorf("unexpected submission %+v", s.creates)
	}
	if c.IsOpen() {
		t.Error("form should close after a successful save")
	}
}

func TestSubmitEditUsesUpdate(t *testing.T) {
	s := &fakeSaver{}
	c := New()
	c.Open(&model.FoodRecord{ID: "3", FoodName: "Old"})
	fill(c)

	if _, ok := submit(c, s); !ok {
		t.Fatalf("submit failed: %+v", c.Errors())
	}
	if sub, found := s.updates["3"]; !found || sub.FoodName != "Burger" {
		t.Errorf("updates = %+v", s.updates)
	}
	if len(s.creates) != 0 {
		t.Error("edit must not create")
	}
}

func TestSubmitFailureKeepsFormOpen(t *testing.T) {
	s := &fakeSaver{err: errors.New("boom")}
	c := New()
	c.Open(nil)
	fill(c)
	before := c.Draft()

	if _, ok := submit(c, s); ok {
		t.Fatal("expected failure")
	}
	if !c.IsOpen() {
		t.Fatal("form must not close on a failed save")
	}
	if c.Errors().General != food.MsgSaveFailed {
		t.Errorf("General = %q", c.Errors().General)
	}
	if c.Draft() != before {
		t.Error("draft must survive a failed save")
	}

	s.err = nil
	if _, ok := submit(c, s); !ok {
		t.Fatal("retry should succeed")
	}
	if c.IsOpen() {
		t.Error("form should close after retry succeeds")
	}
}

func TestResubmitReplacesErrors(t *testing.T) {
	c := New()
	c.Open(nil)
	c.Prepare()
	if !c.Errors().Has(model.FieldFoodName) {
		t.Fatal("expected food name error")
	}

	fill(c)
	d := c.Draft()
	d.Rating = "9"
	c.SetDraft(d)
	c.Prepare()

	errs := c.Errors()
	if len(errs.Fields) != 1 || !errs.Has(model.FieldRating) {
		t.Errorf("expected only the rating error, got %v", errs.Fields)
	}
}
