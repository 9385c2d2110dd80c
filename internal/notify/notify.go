// Package notify defines the notification collaborator shared by the stores and the UI.
package notify

import (
	"sync"
	"time"

	"foodctl/internal/model"
)

// Notifier consumes user-facing notifications. Implementations must be safe for
// concurrent use; stores call Notify from background goroutines.
type Notifier interface {
	Notify(n model.Notification)
}

// Func adapts a function to Notifier.
type Func func(n model.Notification)

func (f Func) Notify(n model.Notification) { f(n) }

// Multi fans a notification out to every non-nil notifier in order.
type Multi []Notifier

func (m Multi) Notify(n model.Notification) {
	for _, t := range m {
		if t != nil {
			t.Notify(n)
		}
	}
}

// Discard drops every notification.
var Discard Notifier = Func(func(model.Notification) {})

// New builds a notification stamped with the current time.
func New(kind model.NotificationKind, msg string) model.Notification {
	return model.Notification{Kind: kind, Message: msg, At: time.Now()}
}

// Success, Error and Loading send a notification of the matching kind to n.
func Success(n Notifier, msg string) { n.Notify(New(model.NotifySuccess, msg)) }

func Error(n Notifier, msg string) { n.Notify(New(model.NotifyError, msg)) }

func Loading(n Notifier, msg string) { n.Notify(New(model.NotifyLoading, msg)) }

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []model.Notification
}

func (r *Recorder) Notify(n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns how many notifications of kind were recorded.
func (r *Recorder) Count(kind model.NotificationKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

// Messages returns the recorded messages of kind, oldest first.
func (r *Recorder) Messages(kind model.NotificationKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, item := range r.items {
		if item.Kind == kind {
			out = append(out, item.Message)
		}
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
