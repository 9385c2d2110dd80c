package ui

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"foodctl/internal/model"
)

const defaultInboxSize = 64

// Inbox carries notifications and refetch requests from background goroutines into the
// Bubble Tea loop. It implements notify.Notifier.
type Inbox struct {
	ch     chan tea.Msg
	logger *slog.Logger
}

// NewInbox creates an inbox. size <= 0 uses the default buffer.
func NewInbox(size int, logger *slog.Logger) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Inbox{ch: make(chan tea.Msg, size), logger: logger}
}

// Notify queues n for display.
func (i *Inbox) Notify(n model.Notification) {
	i.post(model.NotificationMsg{Notification: n})
}

// RequestRefetch asks the UI to reload the food list.
func (i *Inbox) RequestRefetch() {
	i.post(model.RefetchRequestedMsg{})
}

func (i *Inbox) post(msg tea.Msg) {
	select {
	case i.ch <- msg:
	default:
		i.logger.Warn("inbox full, dropping message", "type", fmt.Sprintf("%T", msg))
	}
}

// Listen waits for the next queued message. The UI re-issues it after every delivery.
func (i *Inbox) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-i.ch
	}
}
