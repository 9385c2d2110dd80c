package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"foodctl/internal/food"
	"foodctl/internal/model"
)

const maxUndoActions = 50

type undoAction struct {
	label string
	undo  func(ctx context.Context) error
	redo  func(ctx context.Context) error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	if len(m.undoStack) > maxUndoActions {
		m.undoStack = m.undoStack[len(m.undoStack)-maxUndoActions:]
	}
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return runUndoAction(action, action.undo, "undo", m.timeout)
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return runUndoAction(action, action.redo, "redo", m.timeout)
}

func runUndoAction(action undoAction, fn func(context.Context) error, direction string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return undoAppliedMsg{err: fn(ctx), action: action, direction: direction}
	}
}

// buildFoodSaveAction reverses a create by deleting the new record, and an update by
// writing back the previous values. Recreating a record assigns a new id, which the
// closures share.
func (m *Model) buildFoodSaveAction(msg model.FoodSavedMsg) *undoAction {
	ops := m.ops
	switch msg.Operation {
	case "insert":
		id := msg.After.ID
		sub := food.SubmissionFromRecord(msg.After)
		return &undoAction{
			label: "food added",
			undo: func(ctx context.Context) error {
				return ops.Delete(ctx, id)
			},
			redo: func(ctx context.Context) error {
				rec, err := ops.Create(ctx, sub)
				if err != nil {
					return err
				}
				id = rec.ID
				return nil
			},
		}
	case "update":
		if msg.Before == nil {
			return nil
		}
		id := msg.Before.ID
		before := food.SubmissionFromRecord(*msg.Before)
		after := food.SubmissionFromRecord(msg.After)
		return &undoAction{
			label: "food updated",
			undo: func(ctx context.Context) error {
				_, err := ops.Update(ctx, id, before)
				return err
			},
			redo: func(ctx context.Context) error {
				_, err := ops.Update(ctx, id, after)
				return err
			},
		}
	default:
		return nil
	}
}

func (m *Model) buildFoodDeleteAction(msg model.FoodDeletedMsg) undoAction {
	ops := m.ops
	id := msg.Deleted.ID
	sub := food.SubmissionFromRecord(msg.Deleted)
	return undoAction{
		label: "food deleted",
		undo: func(ctx context.Context) error {
			rec, err := ops.Create(ctx, sub)
			if err != nil {
				return err
			}
			id = rec.ID
			return nil
		},
		redo: func(ctx context.Context) error {
			return ops.Delete(ctx, id)
		},
	}
}

// applyUndoResult moves the action to the opposite stack. The list reloads through the
// gateway's refetch request.
func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		return nil
	}

	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid: " + msg.action.label
	}
	m.error = ""
	return nil
}
