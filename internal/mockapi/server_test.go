package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeRecords(t *testing.T, w *httptest.ResponseRecorder) []Record {
	t.Helper()
	var out []Record
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

func TestListAll(t *testing.T) {
	s := NewSeeded(nil)
	w := serve(t, s, http.MethodGet, "/Food", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := len(decodeRecords(t, w)); got != len(SampleRecords()) {
		t.Errorf("expected %d records, got %d", len(SampleRecords()), got)
	}
}

func TestListFilterIsCaseInsensitiveSubstring(t *testing.T) {
	s := NewSeeded(nil)
	w := serve(t, s, http.MethodGet, "/Food?food_name=STEAK", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	items := decodeRecords(t, w)
	if len(items) != 1 || items[0]["id"] != "6" {
		t.Errorf("unexpected match set: %v", items)
	}
}

func TestListFilterWithoutMatchesIsNotFound(t *testing.T) {
	s := NewSeeded(nil)
	w := serve(t, s, http.MethodGet, "/Food?name=sushi", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `"Not found"` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	s := NewSeeded(nil)

	w := serve(t, s, http.MethodPost, "/Food", `{"food_name":"Tacos","food_rating":4,"id":"999"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created Record
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	id, _ := created["id"].(string)
	if id != "7" {
		t.Errorf("expected server-assigned id 7, got %q", id)
	}
	if created["createdAt"] == nil {
		t.Error("expected createdAt to be set")
	}

	w = serve(t, s, http.MethodPut, "/Food/"+id, `{"food_name":"Fish Tacos"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	r, _ := s.Record(id)
	if r["food_name"] != "Fish Tacos" || r["food_rating"] != float64(4) {
		t.Errorf("update did not merge: %v", r)
	}

	w = serve(t, s, http.MethodDelete, "/Food/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if _, ok := s.Record(id); ok {
		t.Error("record still present after delete")
	}

	w = serve(t, s, http.MethodGet, "/Food/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestFailNext(t *testing.T) {
	s := NewSeeded(nil)
	s.FailNext(http.MethodGet, http.StatusInternalServerError, "database exploded")

	w := serve(t, s, http.MethodGet, "/Food", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "database exploded") {
		t.Errorf("expected message in body, got %s", w.Body.String())
	}

	w = serve(t, s, http.MethodGet, "/Food", "")
	if w.Code != http.StatusOK {
		t.Errorf("fault should apply once, got %d", w.Code)
	}
}

func TestAssets(t *testing.T) {
	s := New(nil)

	w := serve(t, s, http.MethodGet, "/img/Indian_spicy_soup.png", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}

	w = serve(t, s, http.MethodGet, "/img/missing_steak.png", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown asset, got %d", w.Code)
	}
	if s.Hits("/img/missing_steak.png") != 1 {
		t.Errorf("expected one hit, got %d", s.Hits("/img/missing_steak.png"))
	}
}
