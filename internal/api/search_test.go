package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodctl/internal/model"
)

func ids(items []model.FoodRecord) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchMergesBothQueries(t *testing.T) {
	c, _ := newTestClient(t)

	// "breakfast" only matches the name field of record 3; "steak" only food_name.
	items, err := c.Search(context.Background(), "breakfast")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(items); !equalIDs(got, []string{"3"}) {
		t.Errorf("breakfast ids = %v", got)
	}

	items, err = c.Search(context.Background(), "steak")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(items); !equalIDs(got, []string{"6"}) {
		t.Errorf("steak ids = %v", got)
	}
}

func TestSearchDedupesByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("name") != "" {
			w.Write([]byte(`[{"id":"1","name":"first"},{"id":"2","name":"two"}]`))
			return
		}
		w.Write([]byte(`[{"id":"1","food_name":"second"},{"id":"3","food_name":"three"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	items, err := c.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(items); !equalIDs(got, []string{"1", "2", "3"}) {
		t.Fatalf("ids = %v", got)
	}
	if items[0].FoodName != "second" {
		t.Errorf("later copy should replace earlier one, got %+v", items[0])
	}
}

func TestSearchPartialFailureSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"4","food_name":"pizza"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	items, err := c.Search(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("expected partial failure to succeed, got %v", err)
	}
	if got := ids(items); !equalIDs(got, []string{"4"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestSearchBothFail(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Search(context.Background(), "sushi")
	var searchErr *SearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("expected SearchError, got %v", err)
	}
	if len(searchErr.Errs) != 2 {
		t.Errorf("expected 2 causes, got %d", len(searchErr.Errs))
	}
	if !searchErr.NotFound() {
		t.Error("empty match set should report NotFound")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err = NewClient(srv.URL, time.Second, nil).Search(context.Background(), "x")
	if !errors.As(err, &searchErr) || searchErr.NotFound() {
		t.Errorf("expected non-404 SearchError, got %v", err)
	}
}

func TestSearchBlankQueryLists(t *testing.T) {
	c, mock := newTestClient(t)
	items, err := c.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != mock.Len() {
		t.Errorf("expected full list, got %d items", len(items))
	}
}
