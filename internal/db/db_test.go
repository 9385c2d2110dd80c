package db

import (
	"path/filepath"
	"testing"
	"time"

	"foodctl/internal/model"
	"foodctl/internal/notify"
)

func openTestDB(t *testing.T) *ActivityLog {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "foodctl.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewActivityLog(conn, nil)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodctl.db")
	for i := 0; i < 2; i++ {
		conn, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i, err)
		}
		conn.Close()
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "dir", "foodctl.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	conn.Close()
}

func TestActivityLogRoundTrip(t *testing.T) {
	log := openTestDB(t)
	at := time.Date(2025, 6, 20, 12, 30, 0, 0, time.UTC)

	log.Notify(model.Notification{Kind: model.NotifyLoading, Message: "Deleting food item...", At: at})
	notify.Success(log, "Food item deleted successfully!")
	notify.Error(log, "Failed to load food items: timeout")

	entries, err := log.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Kind != model.NotifyError || entries[0].Message != "Failed to load food items: timeout" {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if !entries[2].CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", entries[2].CreatedAt, at)
	}

	limited, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent(2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries, got %d", len(limited))
	}

	if err := log.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ = log.Recent(0)
	if len(entries) != 0 {
		t.Errorf("expected empty log after clear, got %d", len(entries))
	}
}

func TestInsertRejectsUnknownKind(t *testing.T) {
	log := openTestDB(t)
	if _, err := InsertNotification(log.db, model.Notification{Kind: "info", Message: "x"}); err == nil {
		t.Error("expected CHECK constraint failure")
	}
}

func TestRecentSearches(t *testing.T) {
	log := openTestDB(t)
	log.RecordSearch("pizza", 2)
	log.RecordSearch("ramen", 0)
	log.RecordSearch("pizza", 3)

	queries, err := log.RecentSearches(10)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 distinct queries, got %v", queries)
	}
}
