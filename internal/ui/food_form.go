package ui

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/form"
	"foodctl/internal/model"
)

const (
	fieldFoodName = iota
	fieldRating
	fieldPrice
	fieldFoodImage
	fieldRestaurantName
	fieldRestaurantLogo
	fieldStatus
)

var formFields = []struct {
	field       model.Field
	label       string
	placeholder string
	limit       int
}{
	{model.FieldFoodName, "Food Name", "Enter food name", 100},
	{model.FieldRating, "Food Rating", "Enter food rating (1-5)", 4},
	{model.FieldPrice, "Food Price", "Food price ($)", 12},
	{model.FieldFoodImage, "Food Image URL", "Enter food image URL", 300},
	{model.FieldRestaurantName, "Restaurant Name", "Enter restaurant name", 100},
	{model.FieldRestaurantLogo, "Restaurant Logo URL", "Enter restaurant logo URL", 300},
	{model.FieldRestaurantStatus, "Restaurant Status", "", 0},
}

// foodSaveFailedMsg reports a rejected create or update back to the open form.
type foodSaveFailedMsg struct {
	err error
}

// FoodFormModel is the add/edit modal. Validation and the open/closed lifecycle live in
// form.Controller; this model owns the text inputs.
type FoodFormModel struct {
	ctrl         *form.Controller
	ops          Mutations
	keys         FormKeyMap
	inputs       []textinput.Model
	status       model.RestaurantStatus
	focusedField int
	saving       bool
	timeout      time.Duration
}

// NewFoodFormModel opens a form. A nil seed creates, otherwise seed is edited.
func NewFoodFormModel(ops Mutations, seed *model.FoodRecord, timeout time.Duration) *FoodFormModel {
	ctrl := form.New()
	ctrl.Open(seed)

	m := &FoodFormModel{
		ctrl:    ctrl,
		ops:     ops,
		keys:    DefaultFormKeyMap(),
		inputs:  make([]textinput.Model, fieldStatus),
		timeout: timeout,
	}
	for i := range m.inputs {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = formFields[i].placeholder
		m.inputs[i].CharLimit = formFields[i].limit
	}
	m.loadDraft(ctrl.Draft())
	m.inputs[fieldFoodName].Focus()
	return m
}

func (m *FoodFormModel) loadDraft(d model.FoodFormDraft) {
	m.setInput(fieldFoodName, d.FoodName)
	m.setInput(fieldRating, d.Rating)
	m.setInput(fieldPrice, d.Price)
	m.setInput(fieldFoodImage, d.FoodImage)
	m.setInput(fieldRestaurantName, d.RestaurantName)
	m.setInput(fieldRestaurantLogo, d.RestaurantLogo)
	m.status = d.Status
}

// setInput loads a stored value without truncating it. The limit only bounds typing.
func (m *FoodFormModel) setInput(i int, value string) {
	in := &m.inputs[i]
	in.CharLimit = formFields[i].limit
	if n := utf8.RuneCountInString(value); in.CharLimit > 0 && n > in.CharLimit {
		in.CharLimit = n
	}
	in.SetValue(value)
}

func (m *FoodFormModel) draft() model.FoodFormDraft {
	return model.FoodFormDraft{
		FoodName:       m.inputs[fieldFoodName].Value(),
		Rating:         m.inputs[fieldRating].Value(),
		Price:          m.inputs[fieldPrice].Value(),
		FoodImage:      m.inputs[fieldFoodImage].Value(),
		RestaurantName: m.inputs[fieldRestaurantName].Value(),
		RestaurantLogo: m.inputs[fieldRestaurantLogo].Value(),
		Status:         m.status,
	}
}

// Editing reports whether the form edits an existing record.
func (m *FoodFormModel) Editing() bool {
	return m.ctrl.State() == form.StateEdit
}

// Saving reports whether a submit is in flight.
func (m *FoodFormModel) Saving() bool {
	return m.saving
}

// Errors returns the current validation errors.
func (m *FoodFormModel) Errors() model.ValidationErrors {
	return m.ctrl.Errors()
}

// Update handles input.
func (m FoodFormModel) Update(msg tea.Msg) (FoodFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case foodSaveFailedMsg:
		m.saving = false
		m.ctrl.Resolve(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.Close()
			return m, func() tea.Msg {
				return model.FormCancelledMsg{}
			}
		case key.Matches(msg, m.keys.Save):
			return m, m.submit()
		case key.Matches(msg, m.keys.NextField):
			m.nextField()
			return m, nil
		case key.Matches(msg, m.keys.PrevField):
			m.prevField()
			return m, nil
		}

		if m.focusedField == fieldStatus {
			if key.Matches(msg, m.keys.ToggleStatus) {
				m.status = m.status.Toggle()
				m.ctrl.SetDraft(m.draft())
			}
			return m, nil
		}
	}

	if m.focusedField == fieldStatus {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	m.ctrl.SetDraft(m.draft())
	return m, cmd
}

// submit validates and, when valid, returns the save command. It does nothing while any
// mutation is in flight.
func (m *FoodFormModel) submit() tea.Cmd {
	if m.saving || m.ops.IsLoading() {
		return nil
	}
	m.ctrl.SetDraft(m.draft())
	sub, ok := m.ctrl.Prepare()
	if !ok {
		m.focusFirstError()
		return nil
	}

	m.saving = true
	ops := m.ops
	timeout := m.timeout
	var before *model.FoodRecord
	if t := m.ctrl.Target(); t != nil {
		rec := *t
		before = &rec
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		saved, err := form.Save(ctx, ops, before, sub)
		if err != nil {
			return foodSaveFailedMsg{err: err}
		}
		if before != nil {
			return model.FoodSavedMsg{ID: saved.ID, Operation: "update", Before: before, After: saved}
		}
		return model.FoodSavedMsg{ID: saved.ID, Operation: "insert", After: saved}
	}
}

func (m *FoodFormModel) focusFirstError() {
	errs := m.ctrl.Errors()
	for i, f := range formFields {
		if errs.Has(f.field) {
			m.focus(i)
			return
		}
	}
}

func (m *FoodFormModel) focus(idx int) {
	if m.focusedField < len(m.inputs) {
		m.inputs[m.focusedField].Blur()
	}
	m.focusedField = idx
	if idx < len(m.inputs) {
		m.inputs[idx].Focus()
	}
}

func (m *FoodFormModel) nextField() {
	m.focus((m.focusedField + 1) % len(formFields))
}

func (m *FoodFormModel) prevField() {
	idx := m.focusedField - 1
	if idx < 0 {
		idx = len(formFields) - 1
	}
	m.focus(idx)
}

// View renders the form.
func (m *FoodFormModel) View(width, height int) string {
	title := "Add Food"
	if m.Editing() {
		title = "Edit Food"
	}

	errs := m.ctrl.Errors()
	fields := []string{LabelStyle.Render(title)}
	for i, f := range formFields {
		var control string
		if i == fieldStatus {
			control = m.renderStatus()
		} else {
			control = m.inputs[i].View()
		}
		fields = append(fields, renderFormField(f.label, control, m.focusedField == i, errs.Get(f.field)))
	}

	if errs.General != "" {
		fields = append(fields, ErrorStyle.Render(errs.General))
	}

	action := HelpKeyStyle.Render("ctrl+s") + " " + HelpDescStyle.Render("save")
	if m.saving {
		if m.Editing() {
			action = LoadingStyle.Render("Updating Food...")
		} else {
			action = LoadingStyle.Render("Adding Food...")
		}
	}
	fields = append(fields, action)

	return PanelStyle.
		Width(width - 4).
		Height(max(0, height-4)).
		Render(strings.Join(fields, "\n"))
}

func (m *FoodFormModel) renderStatus() string {
	option := func(s model.RestaurantStatus) string {
		if m.status == s {
			return lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("◉ " + string(s))
		}
		return HelpDescStyle.Render("○ " + string(s))
	}
	return option(model.StatusOpen) + "   " + option(model.StatusClosed)
}

func renderFormField(label, control string, focused bool, errMsg string) string {
	style := BorderStyle
	switch {
	case errMsg != "":
		style = ErrorBorderStyle
	case focused:
		style = ActiveBorderStyle
	}

	parts := []string{LabelStyle.Render(label), control}
	if errMsg != "" {
		parts = append(parts, FieldErrorStyle.Render(errMsg))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
