package db

import (
	"database/sql"
	"io"
	"log/slog"

	"foodctl/internal/model"
)

// ActivityLog persists every notification it receives.
type ActivityLog struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewActivityLog wraps db. A nil logger discards.
func NewActivityLog(db *sql.DB, logger *slog.Logger) *ActivityLog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ActivityLog{db: db, logger: logger.With("component", "activity")}
}

// Notify stores n. Write failures are logged, never returned to the notifier chain.
func (a *ActivityLog) Notify(n model.Notification) {
	if _, err := InsertNotification(a.db, n); err != nil {
		a.logger.Warn("failed to persist notification", "error", err)
	}
}

// Recent returns up to limit entries, newest first.
func (a *ActivityLog) Recent(limit int) ([]model.ActivityEntry, error) {
	return ListNotifications(a.db, limit)
}

// Clear deletes the history.
func (a *ActivityLog) Clear() error {
	return ClearNotifications(a.db)
}

// RecordSearch remembers a remote search.
func (a *ActivityLog) RecordSearch(query string, resultCount int) {
	if err := RecordSearch(a.db, query, resultCount); err != nil {
		a.logger.Warn("failed to record search", "error", err)
	}
}

// RecentSearches returns recent remote search queries.
func (a *ActivityLog) RecentSearches(limit int) ([]string, error) {
	return RecentSearches(a.db, limit)
}
