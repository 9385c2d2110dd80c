package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"foodctl/internal/food"
	"foodctl/internal/mockapi"
	"foodctl/internal/model"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestClient(t *testing.T) (*Client, *mockapi.Server) {
	t.Helper()
	mock := mockapi.NewSeeded(nil)
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil), mock
}

func TestListNormalizesMixedSpellings(t *testing.T) {
	c, _ := newTestClient(t)
	items, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}

	smoothie := items[1]
	if got := food.DishName(smoothie); got != "Mixed Avocado Smoothie" {
		t.Errorf("DishName = %q", got)
	}
	if got := food.Rating(smoothie); got != 4 {
		t.Errorf("Rating = %v", got)
	}
	if got := food.Price(smoothie); got != "5.99" {
		t.Errorf("Price = %q", got)
	}
	if got := food.Status(smoothie); got != model.StatusClosed {
		t.Errorf("Status = %q", got)
	}
	if got := food.Price(items[3]); got != food.DefaultPrice {
		t.Errorf("missing price = %q, want default", got)
	}
}

func TestCreateGetUpdateDelete(t *testing.T) {
	c, mock := newTestClient(t)
	ctx := context.Background()

	sub := food.BuildSubmission(model.FoodFormDraft{
		FoodName:       "Ramen",
		Rating:         "4.5",
		FoodImage:      "/img/ramen.png",
		RestaurantName: "Noodle Bar",
		RestaurantLogo: "/logo/noodle.png",
		Status:         model.StatusOpen,
	})
	created, err := c.Create(ctx, sub)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if food.Price(created) != food.DefaultPrice {
		t.Errorf("expected default price to be submitted, got %q", food.Price(created))
	}

	got, err := c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if food.DishName(got) != "Ramen" || food.Rating(got) != 4.5 {
		t.Errorf("unexpected record %+v", got)
	}

	sub.FoodName = "Spicy Ramen"
	sub.RestaurantStatus = model.StatusClosed
	sub.Open = false
	updated, err := c.Update(ctx, created.ID, sub)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if food.DishName(updated) != "Spicy Ramen" || food.Status(updated) != model.StatusClosed {
		t.Errorf("unexpected update result %+v", updated)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := mock.Record(created.ID); ok {
		t.Error("record still present after delete")
	}

	_, err = c.Get(ctx, created.ID)
	if !IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestErrorMessageUsesServerMessage(t *testing.T) {
	c, mock := newTestClient(t)
	mock.FailNext(http.MethodPost, http.StatusBadRequest, "food_name is taken")

	_, err := c.Create(context.Background(), model.FoodFormSubmission{FoodName: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected APIError 400, got %v", err)
	}
	if got := ErrorMessage(err); got != "food_name is taken" {
		t.Errorf("ErrorMessage = %q", got)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"status only", &APIError{StatusCode: 500}, "API error: status 500"},
		{"transport", errors.New("network error: connection refused"), "network error: connection refused"},
		{"empty", errors.New("  "), FallbackErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, nil)
	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure must not be an APIError: %v", err)
	}
	if ErrorMessage(err) == "" {
		t.Error("expected a non-empty message")
	}
}

func TestRequestsCarryRequestID(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	for i := 0; i < 2; i++ {
		if _, err := c.List(context.Background()); err != nil {
			t.Fatalf("List: %v", err)
		}
	}
	if len(ids) != 2 || ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("expected two distinct request ids, got %v", ids)
	}
}

func TestListToleratesMistypedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"1","food_name":"Pancakes","open":false},
			{"id":2,"name":"Waffles","open":"true","createdAt":1718886600},
			{"id":"3","food_name":"Soup","open":"maybe","food_rating":true}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	items, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	tests := []struct {
		id     string
		status model.RestaurantStatus
	}{
		{"1", model.StatusClosed},
		{"2", model.StatusOpen},
		{"3", model.StatusAbsent},
	}
	for i, tt := range tests {
		if items[i].ID != tt.id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, tt.id)
		}
		if got := food.Status(items[i]); got != tt.status {
			t.Errorf("items[%d] status = %q, want %q", i, got, tt.status)
		}
	}
	if items[1].CreatedAt != "1718886600" {
		t.Errorf("CreatedAt = %q", items[1].CreatedAt)
	}
	if got := food.Rating(items[2]); got != 0 {
		t.Errorf("non-numeric rating = %v, want 0", got)
	}
}
