package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodctl/internal/food"
	"foodctl/internal/mockapi"
)

func newTestPreviewer(t *testing.T, h http.Handler) *ImagePreviewer {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewImagePreviewer(srv.URL, 2*time.Second, 8, nil)
	if err != nil {
		t.Fatalf("NewImagePreviewer failed: %v", err)
	}
	return p
}

func TestPreviewFallsBackOnce(t *testing.T) {
	p := newTestPreviewer(t, mockapi.New(nil).Handler())
	ctx := context.Background()
	fallback := food.Fallback(food.ImageFood)

	art, err := p.Preview(ctx, "/img/missing.png", food.ImageFood, 16, 8)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if art == "" {
		t.Error("expected ASCII art from the fallback image")
	}
	if got := p.Requests("/img/missing.png"); got != 1 {
		t.Errorf("missing image requested %d times, want 1", got)
	}
	if got := p.Requests(fallback); got != 1 {
		t.Errorf("fallback requested %d times, want 1", got)
	}

	// The rendered result is cached per reference and size.
	if _, err := p.Preview(ctx, "/img/missing.png", food.ImageFood, 16, 8); err != nil {
		t.Fatalf("second Preview failed: %v", err)
	}
	if got := p.Requests("/img/missing.png") + p.Requests(fallback); got != 2 {
		t.Errorf("cached preview made new requests, total %d", got)
	}
}

func TestPreviewBlankUsesClassFallback(t *testing.T) {
	p := newTestPreviewer(t, mockapi.New(nil).Handler())

	if _, err := p.Preview(context.Background(), "  ", food.ImageRestaurant, 16, 8); err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if got := p.Requests(food.Fallback(food.ImageRestaurant)); got != 1 {
		t.Errorf("logo fallback requested %d times, want 1", got)
	}
}

func TestPreviewDoesNotLoopWhenFallbackFails(t *testing.T) {
	p := newTestPreviewer(t, http.NotFoundHandler())
	ctx := context.Background()
	fallback := food.Fallback(food.ImageFood)

	if _, err := p.Preview(ctx, "/img/missing.png", food.ImageFood, 16, 8); err == nil {
		t.Fatal("expected an error when both images fail")
	}
	if got := p.Requests(fallback); got != 1 {
		t.Errorf("fallback requested %d times, want 1", got)
	}

	if _, err := p.Preview(ctx, "", food.ImageFood, 16, 8); err == nil {
		t.Fatal("expected an error when the fallback itself fails")
	}
	if got := p.Requests(fallback); got != 2 {
		t.Errorf("fallback requested %d times in total, want 2", got)
	}
}

func TestResolveURL(t *testing.T) {
	p, err := NewImagePreviewer("https://assets.example.com/", time.Second, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]string{
		"https://cdn.example.com/a.png": "https://cdn.example.com/a.png",
		"/img/a.png":                    "https://assets.example.com/img/a.png",
		"logo/b.png":                    "https://assets.example.com/logo/b.png",
	}
	for in, want := range tests {
		if got := p.ResolveURL(in); got != want {
			t.Errorf("ResolveURL(%q) = %q, want %q", in, got, want)
		}
	}
}
