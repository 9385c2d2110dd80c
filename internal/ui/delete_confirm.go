package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/api"
	"foodctl/internal/food"
	"foodctl/internal/model"
	"foodctl/internal/notify"
)

const (
	msgDeleting     = "Deleting food item..."
	msgDeleted      = "Food item deleted successfully!"
	msgDeleteFailed = "Failed to delete food item: "
)

type foodDeleteFailedMsg struct {
	err error
}

// deleteCancelledMsg closes the confirmation without deleting.
type deleteCancelledMsg struct{}

// DeleteConfirmModel asks before deleting one food item.
type DeleteConfirmModel struct {
	target   model.FoodRecord
	ops      Mutations
	notifier notify.Notifier
	keys     ConfirmKeyMap
	timeout  time.Duration
	busy     bool
	err      string
}

// NewDeleteConfirmModel creates a confirmation for target.
func NewDeleteConfirmModel(target model.FoodRecord, ops Mutations, notifier notify.Notifier, timeout time.Duration) *DeleteConfirmModel {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &DeleteConfirmModel{
		target:   target,
		ops:      ops,
		notifier: notifier,
		keys:     DefaultConfirmKeyMap(),
		timeout:  timeout,
	}
}

// Busy reports whether the delete is in flight.
func (m *DeleteConfirmModel) Busy() bool {
	return m.busy
}

// Update handles input.
func (m DeleteConfirmModel) Update(msg tea.Msg) (DeleteConfirmModel, tea.Cmd) {
	switch msg := msg.(type) {
	case foodDeleteFailedMsg:
		m.busy = false
		m.err = api.ErrorMessage(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m, m.confirm()
		case key.Matches(msg, m.keys.Cancel):
			if m.busy {
				return m, nil
			}
			return m, func() tea.Msg { return deleteCancelledMsg{} }
		}
	}
	return m, nil
}

// confirm deletes the target, reporting progress through the notifier. Nothing happens while
// any mutation is in flight.
func (m *DeleteConfirmModel) confirm() tea.Cmd {
	if m.busy || m.ops.IsLoading() {
		return nil
	}
	m.busy = true
	m.err = ""

	target := m.target
	ops := m.ops
	notifier := m.notifier
	timeout := m.timeout
	return func() tea.Msg {
		notify.Loading(notifier, msgDeleting)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := ops.Delete(ctx, target.ID); err != nil {
			notify.Error(notifier, msgDeleteFailed+api.ErrorMessage(err))
			return foodDeleteFailedMsg{err: err}
		}
		notify.Success(notifier, msgDeleted)
		return model.FoodDeletedMsg{ID: target.ID, Deleted: target}
	}
}

// View renders the confirmation dialog centered in the content area.
func (m *DeleteConfirmModel) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("Delete Meal")
	body := NormalRowStyle.Render("Are you sure you want to delete this meal? Actions cannot be reversed.")
	name := HelpDescStyle.Render(food.DishName(m.target) + " · " + food.RestaurantName(m.target))

	actions := HelpKeyStyle.Render("y") + " " + HelpDescStyle.Render("yes") + "   " +
		HelpKeyStyle.Render("n/esc") + " " + HelpDescStyle.Render("cancel")
	if m.busy {
		actions = LoadingStyle.Render("Deleting...")
	}

	parts := []string{title, "", body, name, ""}
	if m.err != "" {
		parts = append(parts, ErrorStyle.Render(msgDeleteFailed+m.err), "")
	}
	parts = append(parts, actions)

	dialog := ModalStyle.
		Width(min(70, max(20, width-8))).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
