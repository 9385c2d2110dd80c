package ui

import (
	"path/filepath"
	"testing"

	"foodctl/internal/model"
)

func sampleFoods() []model.FoodRecord {
	return []model.FoodRecord{
		testRecord("1", "Margherita Pizza", "Luigi's", 4.2, "9.50"),
		testRecord("2", "Pad Thai", "Bangkok Street", 4.8, "11.00"),
		testRecord("3", "Pepperoni Pizza", "Luigi's", 3.9, "10.25"),
		testRecord("4", "Green Curry", "Bangkok Street", 4.8, "2.99"),
	}
}

func rowIDs(rows []model.FoodRecord) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
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

func TestFoodsModelLoading(t *testing.T) {
	m := NewFoodsModel()
	if !m.Loading() {
		t.Fatal("new list should be loading")
	}

	m.SetState(nil, false, "")
	if m.Loading() {
		t.Error("list should not be loading after the first result")
	}
	if got := m.EmptyMessage(); got != msgNoItems {
		t.Errorf("EmptyMessage() = %q, want %q", got, msgNoItems)
	}

	// A refetch keeps showing the previous items.
	m.SetState(sampleFoods(), true, "")
	if m.Loading() {
		t.Error("a refetch with items should not show the loading screen")
	}
}

func TestFoodsModelSearch(t *testing.T) {
	m := NewFoodsModel()
	m.SetState(sampleFoods(), false, "")

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3", "4"}},
		{"pizza", []string{"1", "3"}},
		{"BANGKOK", []string{"2", "4"}},
		{"sushi", []string{}},
	}
	for _, tt := range tests {
		m.SetQuery(tt.query)
		if got := rowIDs(m.Rows()); !equalIDs(got, tt.want) {
			t.Errorf("query %q: rows = %v, want %v", tt.query, got, tt.want)
		}
	}

	if got := m.EmptyMessage(); got != msgNoSearchMatch {
		t.Errorf("EmptyMessage() = %q, want %q", got, msgNoSearchMatch)
	}
	m.EndSearch(true)
	if len(m.Rows()) != 4 {
		t.Errorf("clearing the search should restore every row, got %d", len(m.Rows()))
	}
}

func TestFoodsModelSort(t *testing.T) {
	m := NewFoodsModel()
	m.SetState(sampleFoods(), false, "")

	if !m.JumpToColumn(3) {
		t.Fatal("rating column should be selectable")
	}
	m.SortActiveColumn(true)
	if got, want := rowIDs(m.Rows()), []string{"2", "4", "1", "3"}; !equalIDs(got, want) {
		t.Errorf("rating desc = %v, want %v", got, want)
	}

	m.JumpToColumn(4)
	m.SortActiveColumn(false)
	if got, want := rowIDs(m.Rows()), []string{"4", "1", "3", "2"}; !equalIDs(got, want) {
		t.Errorf("price asc = %v, want %v", got, want)
	}
}

func TestFoodsModelValueFilter(t *testing.T) {
	m := NewFoodsModel()
	m.SetState(sampleFoods(), false, "")

	m.JumpToColumn(2)
	if !m.FilterBySelectedValue() {
		t.Fatal("expected filter from selected restaurant")
	}
	if got, want := rowIDs(m.Rows()), []string{"1", "3"}; !equalIDs(got, want) {
		t.Errorf("filtered rows = %v, want %v", got, want)
	}
	if !m.ClearFilter() {
		t.Error("ClearFilter should report a change")
	}
	if m.ClearFilter() {
		t.Error("second ClearFilter should be a no-op")
	}
}

func TestFoodsModelRemoteResults(t *testing.T) {
	m := NewFoodsModel()
	m.SetState(sampleFoods(), false, "")

	m.SetRemoteResults("curry", []model.FoodRecord{testRecord("4", "Green Curry", "Bangkok Street", 4.8, "2.99")})
	if got := rowIDs(m.Rows()); !equalIDs(got, []string{"4"}) {
		t.Errorf("remote rows = %v", got)
	}
	if q, ok := m.RemoteQuery(); !ok || q != "curry" {
		t.Errorf("RemoteQuery() = %q, %v", q, ok)
	}

	m.SetRemoteResults("sushi", nil)
	if got := m.EmptyMessage(); got != msgNoSearchMatch {
		t.Errorf("EmptyMessage() = %q, want %q", got, msgNoSearchMatch)
	}

	if !m.ClearRemoteResults() {
		t.Fatal("ClearRemoteResults should report a change")
	}
	if len(m.Rows()) != 4 {
		t.Errorf("store rows should be back, got %d", len(m.Rows()))
	}
}

func TestFoodsModelNavigation(t *testing.T) {
	m := NewFoodsModel()
	m.SetState(sampleFoods(), false, "")

	m.MoveDown()
	m.MoveDown()
	if rec, _ := m.Selected(); rec.ID != "3" {
		t.Errorf("selected %q, want 3", rec.ID)
	}
	m.JumpToBottom()
	if rec, _ := m.Selected(); rec.ID != "4" {
		t.Errorf("selected %q, want 4", rec.ID)
	}
	m.MoveDown()
	if rec, _ := m.Selected(); rec.ID != "4" {
		t.Errorf("cursor should stop at the last row, got %q", rec.ID)
	}
	m.JumpToTop()
	if rec, _ := m.Selected(); rec.ID != "1" {
		t.Errorf("selected %q, want 1", rec.ID)
	}

	m.SetState(sampleFoods()[:1], false, "")
	m.JumpToBottom()
	if rec, ok := m.Selected(); !ok || rec.ID != "1" {
		t.Errorf("cursor should clamp to the remaining row, got %q", rec.ID)
	}
}

func TestFoodsModelPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "ui_prefs.json")

	m := NewFoodsModel()
	m.SetState(sampleFoods(), false, "")
	m.JumpToColumn(3)
	m.SortActiveColumn(true)
	m.JumpToColumn(6)
	if !m.HideActiveColumn() {
		t.Fatal("expected column to hide")
	}
	if err := saveUIPreferences(path, UIPreferences{Foods: m.Prefs()}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := loadUIPreferences(path)
	restored := NewFoodsModel()
	restored.ApplyPrefs(loaded.Foods)
	restored.SetState(sampleFoods(), false, "")

	if got, want := rowIDs(restored.Rows()), []string{"2", "4", "1", "3"}; !equalIDs(got, want) {
		t.Errorf("restored order = %v, want %v", got, want)
	}
	prefs := restored.Prefs()
	if len(prefs.HiddenColumns) != 1 || prefs.HiddenColumns[0] != "created" {
		t.Errorf("hidden columns = %v", prefs.HiddenColumns)
	}

	if got := loadUIPreferences(filepath.Join(t.TempDir(), "missing.json")); got.Foods.SortKey != "" {
		t.Errorf("missing file should give zero prefs, got %+v", got)
	}
}
