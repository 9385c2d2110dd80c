package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/food"
	"foodctl/internal/model"
	"foodctl/internal/util"
)

const (
	msgNoItems       = "No items available"
	msgNoSearchMatch = "No items found matching your search"
)

// FoodsModel represents the food list screen.
type FoodsModel struct {
	storeItems  []model.FoodRecord
	remoteItems []model.FoodRecord
	remoteQuery string
	remote      bool

	rows   []model.FoodRecord
	cursor int
	offset int

	viewportHeight int

	loading bool
	err     string

	search    textinput.Model
	searching bool
	query     string

	columns      []tableColumn
	activeColumn int
	sortKey      string
	sortDesc     bool
	filterKey    string
	filterValue  string
}

// NewFoodsModel creates the list in its loading state.
func NewFoodsModel() *FoodsModel {
	search := textinput.New()
	search.Placeholder = "Search by food or restaurant"
	search.Prompt = "/ "
	search.CharLimit = 100

	return &FoodsModel{
		loading: true,
		search:  search,
		columns: []tableColumn{
			{key: "name", label: "food", width: 24},
			{key: "restaurant", label: "restaurant", width: 20},
			{key: "rating", label: "rating", width: 8},
			{key: "price", label: "price", width: 10},
			{key: "status", label: "status", width: 12},
			{key: "created", label: "added", width: 14},
		},
	}
}

// SetState replaces the store-backed items.
func (m *FoodsModel) SetState(items []model.FoodRecord, loading bool, err string) {
	m.storeItems = append([]model.FoodRecord(nil), items...)
	m.loading = loading
	m.err = err
	m.rebuild()
}

// SetRemoteResults shows the result of a Find Meal search instead of the store items.
func (m *FoodsModel) SetRemoteResults(query string, items []model.FoodRecord) {
	m.remote = true
	m.remoteQuery = query
	m.remoteItems = append([]model.FoodRecord(nil), items...)
	m.cursor = 0
	m.offset = 0
	m.rebuild()
}

// ClearRemoteResults goes back to the store items. It reports whether anything changed.
func (m *FoodsModel) ClearRemoteResults() bool {
	if !m.remote {
		return false
	}
	m.remote = false
	m.remoteQuery = ""
	m.remoteItems = nil
	m.rebuild()
	return true
}

// RemoteQuery returns the active Find Meal query.
func (m *FoodsModel) RemoteQuery() (string, bool) {
	return m.remoteQuery, m.remote
}

// Loading reports whether the first load is still pending.
func (m *FoodsModel) Loading() bool {
	return m.loading && len(m.storeItems) == 0 && !m.remote
}

// Rows returns the visible rows.
func (m *FoodsModel) Rows() []model.FoodRecord {
	return m.rows
}

// Selected returns the row under the cursor.
func (m *FoodsModel) Selected() (model.FoodRecord, bool) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return model.FoodRecord{}, false
	}
	return m.rows[m.cursor], true
}

// StartSearch focuses the live search input.
func (m *FoodsModel) StartSearch() tea.Cmd {
	m.searching = true
	m.search.SetValue(m.query)
	m.search.CursorEnd()
	return m.search.Focus()
}

// UpdateSearch feeds a key to the search input and refilters.
func (m *FoodsModel) UpdateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.SetQuery(m.search.Value())
	return cmd
}

// EndSearch leaves the search input. clear drops the query as well.
func (m *FoodsModel) EndSearch(clear bool) {
	m.searching = false
	m.search.Blur()
	if clear {
		m.search.SetValue("")
		m.SetQuery("")
	}
}

// SetQuery sets the live filter query.
func (m *FoodsModel) SetQuery(q string) {
	m.query = q
	m.rebuild()
}

// Query returns the live filter query.
func (m *FoodsModel) Query() string {
	return m.query
}

// EmptyMessage is shown when there are no rows.
func (m *FoodsModel) EmptyMessage() string {
	if strings.TrimSpace(m.query) != "" || m.remote || m.filterKey != "" {
		return msgNoSearchMatch
	}
	return msgNoItems
}

func (m *FoodsModel) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		m.sortKey = prefs.SortKey
		m.sortDesc = prefs.SortDesc
	}
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].key]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.key == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}
	m.ensureVisibleActiveColumn()
	m.rebuild()
}

func (m *FoodsModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.key)
		}
	}
	return TablePrefs{
		SortKey:       m.sortKey,
		SortDesc:      m.sortDesc,
		HiddenColumns: hidden,
		ActiveColumn:  m.columns[m.activeColumn].key,
	}
}

func (m *FoodsModel) source() []model.FoodRecord {
	if m.remote {
		return m.remoteItems
	}
	return m.storeItems
}

func (m *FoodsModel) rebuild() {
	rows := append([]model.FoodRecord(nil), food.Filter(m.source(), m.query)...)

	if m.filterKey != "" && m.filterValue != "" {
		filtered := make([]model.FoodRecord, 0, len(rows))
		target := strings.TrimSpace(m.filterValue)
		for _, r := range rows {
			if strings.EqualFold(strings.TrimSpace(m.displayValue(r, m.filterKey)), target) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if m.sortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			left := strings.ToLower(m.sortValue(rows[i], m.sortKey))
			right := strings.ToLower(m.sortValue(rows[j], m.sortKey))
			if left == right {
				return idLess(rows[i].ID, rows[j].ID)
			}
			if m.sortDesc {
				return left > right
			}
			return left < right
		})
	}

	m.rows = rows
	m.clampCursor()
}

func idLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}

func (m *FoodsModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// sortValue returns a string that orders correctly for key.
func (m *FoodsModel) sortValue(r model.FoodRecord, key string) string {
	switch key {
	case "rating":
		return fmt.Sprintf("%05.2f", food.Rating(r))
	case "price":
		v, err := strconv.ParseFloat(strings.TrimPrefix(food.Price(r), "$"), 64)
		if err != nil {
			return food.Price(r)
		}
		return fmt.Sprintf("%012.2f", v)
	case "created":
		return r.CreatedAt
	default:
		return m.displayValue(r, key)
	}
}

// displayValue returns the plain text shown for key, used for value filters.
func (m *FoodsModel) displayValue(r model.FoodRecord, key string) string {
	switch key {
	case "name":
		return food.DishName(r)
	case "restaurant":
		return food.RestaurantName(r)
	case "rating":
		return util.FormatRating(food.Rating(r))
	case "price":
		return util.FormatPrice(food.Price(r))
	case "status":
		return util.FormatStatus(food.Status(r))
	case "created":
		return util.FormatDate(r.CreatedAt)
	default:
		return ""
	}
}

func (m *FoodsModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *FoodsModel) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

func (m *FoodsModel) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *FoodsModel) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *FoodsModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *FoodsModel) SortActiveColumn(desc bool) {
	m.sortKey = m.columns[m.activeColumn].key
	m.sortDesc = desc
	m.rebuild()
}

func (m *FoodsModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *FoodsModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *FoodsModel) FilterBySelectedValue() bool {
	if len(m.rows) == 0 {
		return false
	}
	key := m.columns[m.activeColumn].key
	value := strings.TrimSpace(m.displayValue(m.rows[m.cursor], key))
	if value == "" || value == "—" {
		return false
	}
	m.filterKey = key
	m.filterValue = value
	m.rebuild()
	return true
}

func (m *FoodsModel) ClearFilter() bool {
	if m.filterKey == "" {
		return false
	}
	m.filterKey = ""
	m.filterValue = ""
	m.rebuild()
	return true
}

func (m *FoodsModel) TableMeta() string {
	col := strings.ToUpper(m.columns[m.activeColumn].label)
	parts := []string{fmt.Sprintf("col %s", col)}
	if m.sortKey != "" {
		order := "asc"
		if m.sortDesc {
			order = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.sortKey), order))
	}
	if m.filterKey != "" {
		parts = append(parts, fmt.Sprintf("filter %s=%q", strings.ToUpper(m.filterKey), m.filterValue))
	}
	return strings.Join(parts, "  ·  ")
}

func (m *FoodsModel) renderSearchBar(width int) string {
	if m.searching {
		return SearchPromptStyle.Width(width).Render(m.search.View())
	}
	if m.remote {
		return SearchPromptStyle.Width(width).Render(fmt.Sprintf("Find Meal: %q  (esc to clear)", m.remoteQuery))
	}
	if m.query != "" {
		return SearchPromptStyle.Width(width).Render(fmt.Sprintf("/ %s", m.query))
	}
	return ""
}

// View renders the food list.
func (m *FoodsModel) View(width, height int) string {
	searchBar := m.renderSearchBar(width)
	if searchBar != "" {
		height -= lipgloss.Height(searchBar)
	}

	body := m.renderBody(width, height)
	if searchBar == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, searchBar, body)
}

func (m *FoodsModel) renderBody(width, height int) string {
	if len(m.rows) == 0 {
		msg := m.EmptyMessage()
		if m.err != "" && !m.remote {
			msg = "Failed to load food items: " + m.err + "\n    Press R to retry."
			return ErrorStyle.Padding(2, 4).Width(width).Height(height).Render(msg)
		}
		if msg == msgNoItems {
			msg += ".\n    Press a to add your first food!"
		}
		return EmptyStateStyle.Width(width).Height(height).Render(msg)
	}

	visible := m.visibleColumnIndexes()
	if len(visible) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No visible columns. Press C to show all columns.")
	}

	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		if m.sortKey == col.key {
			if m.sortDesc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+4)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	sepTotal := (len(widths) - 1) * tableSeparatorWidth()
	if extra := width - totalFixed - sepTotal - 2; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := max(1, height-3)
	m.viewportHeight = visibleHeight

	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		rec := m.rows[i]
		style := NormalRowStyle.Padding(0, 1)
		if i == m.cursor {
			style = SelectedRowStyle.Padding(0, 1)
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			cells = append(cells, m.renderCell(rec, m.columns[idx], i == m.cursor))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	status := StatusBarStyle.Render(m.statusLine())

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

func (m *FoodsModel) renderCell(rec model.FoodRecord, col tableColumn, selected bool) string {
	switch col.key {
	case "name":
		return util.TruncateString(food.DishName(rec), col.width)
	case "restaurant":
		return util.TruncateString(food.RestaurantName(rec), col.width)
	case "rating":
		text := util.FormatRatingWithStar(food.Rating(rec))
		if selected || food.Rating(rec) == 0 {
			return text
		}
		return lipgloss.NewStyle().Foreground(ColorYellow).Render(text)
	case "price":
		return util.FormatPrice(food.Price(rec))
	case "status":
		status := food.Status(rec)
		text := util.FormatStatusSymbol(status) + " " + util.FormatStatus(status)
		if selected {
			return text
		}
		switch status {
		case model.StatusOpen:
			return lipgloss.NewStyle().Foreground(ColorGreen).Render(text)
		case model.StatusClosed:
			return lipgloss.NewStyle().Foreground(ColorRed).Render(text)
		}
		return HelpDescStyle.Render(text)
	case "created":
		return util.FormatCreatedAt(rec.CreatedAt)
	}
	return ""
}

func (m *FoodsModel) statusLine() string {
	total := len(m.source())
	parts := []string{fmt.Sprintf("%d foods", len(m.rows))}
	if len(m.rows) > 0 {
		parts = append(parts, fmt.Sprintf("row %d/%d", m.cursor+1, len(m.rows)))
	}

	totalRating, rated := 0.0, 0
	for _, r := range m.rows {
		if v := food.Rating(r); v > 0 {
			totalRating += v
			rated++
		}
	}
	if rated > 0 {
		parts = append(parts, fmt.Sprintf("avg rating %.1f", totalRating/float64(rated)))
	}
	if len(m.rows) != total {
		parts = append(parts, fmt.Sprintf("showing %d/%d", len(m.rows), total))
	}
	if m.loading {
		parts = append(parts, "refreshing…")
	}
	parts = append(parts, m.TableMeta())
	return strings.Join(parts, "  ·  ")
}

// MoveDown moves the cursor down.
func (m *FoodsModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageHeight() {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *FoodsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *FoodsModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *FoodsModel) JumpToBottom() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = len(m.rows) - 1
	if vh := m.pageHeight(); m.cursor >= vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageDown moves down half a page.
func (m *FoodsModel) HalfPageDown(pageSize int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(m.cursor+pageSize/2, len(m.rows)-1)
	if vh := m.pageHeight(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *FoodsModel) HalfPageUp(pageSize int) {
	m.cursor = max(m.cursor-pageSize/2, 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m *FoodsModel) pageHeight() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}
