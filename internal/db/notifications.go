package db

import (
	"database/sql"
	"fmt"
	"time"

	"foodctl/internal/model"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

// InsertNotification persists n and returns its row id.
func InsertNotification(db *sql.DB, n model.Notification) (int64, error) {
	at := n.At
	if at.IsZero() {
		at = time.Now()
	}
	result, err := db.Exec(
		`INSERT INTO notifications (kind, message, created_at) VALUES (?, ?, ?)`,
		string(n.Kind), n.Message, at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert notification: %w", err)
	}
	return result.LastInsertId()
}

// ListNotifications returns up to limit notifications, newest first. A limit <= 0 returns all.
func ListNotifications(db *sql.DB, limit int) ([]model.ActivityEntry, error) {
	query := `SELECT id, kind, message, created_at FROM notifications ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var entries []model.ActivityEntry
	for rows.Next() {
		var e model.ActivityEntry
		var kind, createdAt string
		if err := rows.Scan(&e.ID, &kind, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		e.Kind = model.NotificationKind(kind)
		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return entries, nil
}

// ClearNotifications deletes the whole history.
func ClearNotifications(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM notifications`); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

// RecordSearch upserts query into the search history.
func RecordSearch(db *sql.DB, query string, resultCount int) error {
	_, err := db.Exec(`
		INSERT INTO search_history (query, result_count, searched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			result_count = excluded.result_count,
			searched_at = excluded.searched_at
	`, query, resultCount, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit distinct queries, most recent first.
func RecentSearches(db *sql.DB, limit int) ([]string, error) {
	rows, err := db.Query(`SELECT query FROM search_history ORDER BY searched_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}
	return queries, nil
}
