package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/api"
	"foodctl/internal/form"
	"foodctl/internal/model"
	"foodctl/internal/notify"
	"foodctl/internal/store"
)

const defaultTimeout = 10 * time.Second

// Mutations is the write side of the API as the UI uses it.
type Mutations interface {
	form.Saver
	Delete(ctx context.Context, id string) error
	IsLoading() bool
}

// Searcher runs remote lookups.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.FoodRecord, error)
	Get(ctx context.Context, id string) (model.FoodRecord, error)
}

// ActivityStore is the persisted notification history.
type ActivityStore interface {
	Recent(limit int) ([]model.ActivityEntry, error)
	Clear() error
	RecordSearch(query string, resultCount int)
	RecentSearches(limit int) ([]string, error)
}

// Deps wires the root model to the rest of the program.
type Deps struct {
	Foods     *store.FoodStore
	Ops       Mutations
	Search    Searcher
	Activity  ActivityStore
	Inbox     *Inbox
	Notifier  notify.Notifier
	Previewer *ImagePreviewer
	PrefsPath string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	foodStore *store.FoodStore
	ops       Mutations
	searcher  Searcher
	activity  ActivityStore
	inbox     *Inbox
	notifier  notify.Notifier
	previewer *ImagePreviewer
	prefsPath string
	timeout   time.Duration
	logger    *slog.Logger

	screen     model.Screen
	prevScreen model.Screen
	mode       model.Mode
	gState     GState

	width  int
	height int

	error       string
	info        string
	infoKind    model.NotificationKind
	showingHelp bool
	columnJump  bool
	spinner     spinner.Model

	// Screen models
	foods         *FoodsModel
	foodDetail    *FoodDetailModel
	foodForm      *FoodFormModel
	deleteConfirm *DeleteConfirmModel
	activityView  *ActivityModel

	keys      KeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model.
func New(deps Deps) Model {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	inbox := deps.Inbox
	if inbox == nil {
		inbox = NewInbox(0, logger)
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = inbox
	}

	prefs := loadUIPreferences(deps.PrefsPath)
	foods := NewFoodsModel()
	foods.ApplyPrefs(prefs.Foods)

	return Model{
		foodStore: deps.Foods,
		ops:       deps.Ops,
		searcher:  deps.Search,
		activity:  deps.Activity,
		inbox:     inbox,
		notifier:  notifier,
		previewer: deps.Previewer,
		prefsPath: deps.PrefsPath,
		timeout:   timeout,
		logger:    logger.With("component", "ui"),
		screen:    model.ScreenFoods,
		mode:      model.ModeNav,
		gState:    GStateIdle,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(LoadingStyle.UnsetPadding())),
		foods:     foods,
		keys:      DefaultKeyMap(),
		prefs:     prefs,
	}
}

// Init loads the list once and starts listening for notifications.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadFoodsCmd(m.foodStore, m.timeout),
		m.inbox.Listen(),
		m.spinner.Tick,
	)
}

func loadFoodsCmd(s *store.FoodStore, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		st, err := s.Load(ctx)
		if errors.Is(err, store.ErrStale) {
			return nil
		}
		return model.FoodsLoadedMsg{Items: st.Items, IsLoading: st.IsLoading, Err: st.Err}
	}
}

func findMealCmd(s Searcher, activity ActivityStore, query string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := s.Search(ctx, query)
		if err != nil {
			var se *api.SearchError
			if !errors.As(err, &se) || !se.NotFound() {
				return model.ErrorMsg{Err: err}
			}
			items = nil
		}
		if activity != nil {
			activity.RecordSearch(query, len(items))
		}
		return model.FoodSearchResultsMsg{Query: query, Items: items}
	}
}

func loadFoodDetailCmd(s Searcher, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rec, err := s.Get(ctx, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load food item: %s", api.ErrorMessage(err))}
		}
		return model.FoodDetailLoadedMsg{Food: rec}
	}
}

// refetch reloads the list and keeps the spinner running while it does.
func (m *Model) refetch() tea.Cmd {
	m.foods.loading = true
	return tea.Batch(loadFoodsCmd(m.foodStore, m.timeout), m.spinner.Tick)
}

func (m *Model) busy() bool {
	return m.foods.loading || (m.ops != nil && m.ops.IsLoading())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case model.ModeInsert:
			return m.handleInsertMode(msg)
		case model.ModeSearch:
			return m.handleSearchMode(msg)
		}

		if m.columnJump {
			if msg.String() == "esc" {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				if t := m.currentTable(); t != nil && t.JumpToColumn(n) {
					m.columnJump = false
					m.setInfo(fmt.Sprintf("Jumped to column %d", n))
					m.persistCurrentTablePrefs()
					return m, nil
				}
				m.setInfo(fmt.Sprintf("Column %d unavailable", n))
				return m, nil
			}
		}

		if msg.String() == "?" {
			m.showingHelp = !m.showingHelp
			return m, nil
		}
		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.FoodsLoadedMsg:
		m.foods.SetState(msg.Items, msg.IsLoading, msg.Err)
		if msg.Err == "" {
			m.error = ""
		}
		return m, nil

	case model.NotificationMsg:
		m.info = msg.Notification.Message
		m.infoKind = msg.Notification.Kind
		cmds := []tea.Cmd{m.inbox.Listen()}
		if m.screen == model.ScreenActivity && m.activity != nil {
			cmds = append(cmds, loadActivityCmd(m.activity))
		}
		return m, tea.Batch(cmds...)

	case model.RefetchRequestedMsg:
		return m, tea.Batch(m.refetch(), m.inbox.Listen())

	case model.FoodSearchResultsMsg:
		m.foods.EndSearch(true)
		m.foods.SetRemoteResults(msg.Query, msg.Items)
		if len(msg.Items) == 0 {
			m.setInfo(msgNoSearchMatch)
		} else {
			m.setInfo(fmt.Sprintf("%d results for %q", len(msg.Items), msg.Query))
		}
		m.error = ""
		return m, nil

	case model.FoodDetailLoadedMsg:
		if m.foodDetail != nil && m.foodDetail.food.ID == msg.Food.ID {
			m.foodDetail.food = msg.Food
		}
		return m, nil

	case previewLoadedMsg:
		if m.foodDetail != nil {
			m.foodDetail.ApplyPreview(msg)
		}
		return m, nil

	case model.FoodSavedMsg:
		if action := m.buildFoodSaveAction(msg); action != nil {
			m.pushUndoAction(*action)
		}
		if m.screen == model.ScreenFoodForm {
			m.mode = model.ModeNav
			m.screen = m.prevScreen
		}
		m.foodForm = nil
		var cmd tea.Cmd
		if msg.Operation == "update" {
			m.setInfo("Food updated (u to undo)")
			if m.screen == model.ScreenFoodDetail {
				m.foodDetail = NewFoodDetailModel(msg.After)
				cmd = m.foodDetail.LoadPreviews(m.previewer, m.timeout)
			}
		} else {
			m.setInfo("Food added (u to undo)")
		}
		return m, cmd

	case foodSaveFailedMsg:
		if m.foodForm != nil {
			updated, cmd := m.foodForm.Update(msg)
			m.foodForm = &updated
			return m, cmd
		}
		return m, nil

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.foodForm = nil
		m.screen = m.prevScreen
		return m, nil

	case model.FoodDeletedMsg:
		m.pushUndoAction(m.buildFoodDeleteAction(msg))
		m.deleteConfirm = nil
		m.foodDetail = nil
		m.screen = model.ScreenFoods
		m.setInfo("Food deleted (u to undo)")
		return m, nil

	case foodDeleteFailedMsg:
		if m.deleteConfirm != nil {
			confirm, cmd := m.deleteConfirm.Update(msg)
			m.deleteConfirm = &confirm
			return m, cmd
		}
		return m, nil

	case deleteCancelledMsg:
		m.deleteConfirm = nil
		m.screen = m.prevScreen
		return m, nil

	case model.ActivityLoadedMsg:
		m.activityView = NewActivityModel(msg.Entries, msg.Searches)
		return m, nil

	case activityClearedMsg:
		m.setInfo("Activity cleared")
		return m, loadActivityCmd(m.activity)

	case undoAppliedMsg:
		return m, m.applyUndoResult(msg)

	default:
		switch m.mode {
		case model.ModeInsert:
			return m.handleInsertMode(msg)
		case model.ModeSearch:
			return m, m.foods.UpdateSearch(msg)
		}
	}

	return m, nil
}

func (m *Model) setInfo(s string) {
	m.info = s
	m.infoKind = model.NotifySuccess
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var content string
	var breadcrumbParts []string

	showTabs := m.screen == model.ScreenFoods || m.screen == model.ScreenActivity

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if b := m.renderInfoBanner(); b != "" {
		banners = append(banners, b)
	}

	// header + footer + padding, then tabs and banners
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	contentHeight -= len(banners)
	contentHeight = max(1, contentHeight)

	switch m.screen {
	case model.ScreenFoods:
		breadcrumbParts = []string{"Foods"}
		content = m.renderFoods(contentHeight)
	case model.ScreenActivity:
		breadcrumbParts = []string{"Activity"}
		if m.activityView != nil {
			content = m.activityView.View(m.width, contentHeight)
		}
	case model.ScreenFoodDetail:
		breadcrumbParts = []string{"Foods", "Detail"}
		if m.foodDetail != nil {
			breadcrumbParts = []string{"Foods", m.foodDetail.title()}
			content = m.foodDetail.View(m.width, contentHeight)
		}
	case model.ScreenFoodForm:
		breadcrumbParts = []string{"Foods", "Add"}
		if m.foodForm != nil {
			if m.foodForm.Editing() {
				breadcrumbParts = []string{"Foods", "Edit"}
			}
			content = m.foodForm.View(m.width, contentHeight)
		}
	case model.ScreenDeleteConfirm:
		breadcrumbParts = []string{"Foods", "Delete"}
		if m.deleteConfirm != nil {
			content = m.deleteConfirm.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	parts = append(parts, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderFoods(height int) string {
	if m.foods.Loading() {
		return EmptyStateStyle.Width(m.width).Height(height).Render(m.spinner.View() + " Loading food items...")
	}
	return m.foods.View(m.width, height)
}

func (m Model) renderInfoBanner() string {
	if m.info == "" {
		return ""
	}
	switch m.infoKind {
	case model.NotifyError:
		return ErrorStyle.Width(m.width).Render(m.info)
	case model.NotifyLoading:
		return LoadingStyle.Width(m.width).Render(m.spinner.View() + " " + m.info)
	default:
		return SuccessStyle.Width(m.width).Render(m.info)
	}
}

func renderTabs(screen model.Screen, width int) string {
	tabs := []struct {
		name   string
		screen model.Screen
	}{
		{"Foods", model.ScreenFoods},
		{"Activity", model.ScreenActivity},
	}

	var tabStrings []string
	for _, tab := range tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)
		if screen == tab.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}
		tabStrings = append(tabStrings, tabStyle.Render(tab.name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("foodctl")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.setInfo("Jump to column: press 1-9 (esc to cancel)")
			return m, nil
		case key.Matches(msg, m.keys.SortAsc):
			t.SortActiveColumn(false)
			m.setInfo("Sorted ascending")
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.SortDesc):
			t.SortActiveColumn(true)
			m.setInfo("Sorted descending")
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			if t.HideActiveColumn() {
				m.setInfo("Column hidden")
				m.persistCurrentTablePrefs()
			} else {
				m.setInfo("Cannot hide last visible column")
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			t.ShowAllColumns()
			m.setInfo("All columns shown")
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, m.keys.FilterValue):
			if t.FilterBySelectedValue() {
				m.setInfo("Filter applied from selected value")
			} else {
				m.setInfo("No filterable value in selected cell")
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			if t.ClearFilter() {
				m.setInfo("Filter cleared")
			}
			return m, nil
		}
	}

	if m.screen != model.ScreenDeleteConfirm {
		switch {
		case key.Matches(msg, m.keys.Undo):
			if len(m.undoStack) == 0 {
				m.setInfo("Nothing to undo")
				return m, nil
			}
			return m, m.undoCmd()
		case key.Matches(msg, m.keys.Redo):
			if len(m.redoStack) == 0 {
				m.setInfo("Nothing to redo")
				return m, nil
			}
			return m, m.redoCmd()
		}
	}

	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		return m.handleJumpToTop()
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenFoods:
		return m.handleFoodsNav(msg)
	case model.ScreenFoodDetail:
		return m.handleFoodDetailNav(msg)
	case model.ScreenDeleteConfirm:
		if m.deleteConfirm != nil {
			confirm, cmd := m.deleteConfirm.Update(msg)
			m.deleteConfirm = &confirm
			return m, cmd
		}
	case model.ScreenActivity:
		return m.handleActivityNav(msg)
	}
	return m, nil
}

func (m *Model) currentTable() tableController {
	if m.screen == model.ScreenFoods && !m.foods.Loading() {
		return m.foods
	}
	return nil
}

func (m *Model) persistCurrentTablePrefs() {
	if m.screen != model.ScreenFoods {
		return
	}
	m.prefs.Foods = m.foods.Prefs()
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save preferences", "error", err)
	}
}

// handleInsertMode routes input to the open form.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.foodForm == nil {
		m.mode = model.ModeNav
		return m, nil
	}
	updated, cmd := m.foodForm.Update(msg)
	m.foodForm = &updated
	return m, cmd
}

// handleSearchMode drives the live search prompt. Enter runs Find Meal on the server.
func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.foods.EndSearch(true)
		m.mode = model.ModeNav
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.foods.Query())
		m.mode = model.ModeNav
		if query == "" || m.searcher == nil {
			m.foods.EndSearch(query == "")
			return m, nil
		}
		m.foods.EndSearch(false)
		m.infoKind = model.NotifyLoading
		m.info = fmt.Sprintf("Searching for %q...", query)
		return m, findMealCmd(m.searcher, m.activity, query, m.timeout)
	}
	return m, m.foods.UpdateSearch(msg)
}

func (m Model) handleJumpToTop() (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenFoods:
		m.foods.JumpToTop()
	case model.ScreenActivity:
		if m.activityView != nil {
			m.activityView.JumpToTop()
		}
	}
	return m, nil
}

// openForm opens the add form, or the edit form when seed is set.
func (m Model) openForm(seed *model.FoodRecord) (tea.Model, tea.Cmd) {
	if m.ops == nil {
		return m, nil
	}
	m.prevScreen = m.screen
	m.mode = model.ModeInsert
	m.screen = model.ScreenFoodForm
	m.foodForm = NewFoodFormModel(m.ops, seed, m.timeout)
	return m, nil
}

func (m Model) openDeleteConfirm(target model.FoodRecord) (tea.Model, tea.Cmd) {
	if m.ops == nil {
		return m, nil
	}
	m.prevScreen = m.screen
	m.screen = model.ScreenDeleteConfirm
	m.deleteConfirm = NewDeleteConfirmModel(target, m.ops, m.notifier, m.timeout)
	return m, nil
}

func (m Model) openDetail(rec model.FoodRecord) (tea.Model, tea.Cmd) {
	m.screen = model.ScreenFoodDetail
	m.foodDetail = NewFoodDetailModel(rec)
	cmds := []tea.Cmd{m.foodDetail.LoadPreviews(m.previewer, m.timeout)}
	if m.searcher != nil && rec.ID != "" {
		cmds = append(cmds, loadFoodDetailCmd(m.searcher, rec.ID, m.timeout))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleFoodsNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.mode = model.ModeSearch
		return m, m.foods.StartSearch()
	case msg.String() == "esc":
		if m.foods.ClearRemoteResults() {
			m.setInfo("Search cleared")
		} else if m.foods.Query() != "" {
			m.foods.EndSearch(true)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refetch()
	case key.Matches(msg, m.keys.Activity):
		if m.activity == nil {
			return m, nil
		}
		m.screen = model.ScreenActivity
		return m, loadActivityCmd(m.activity)
	case key.Matches(msg, m.keys.Add):
		return m.openForm(nil)
	}

	if m.foods.Loading() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		if rec, ok := m.foods.Selected(); ok {
			return m.openForm(&rec)
		}
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.foods.Selected(); ok {
			return m.openDeleteConfirm(rec)
		}
	case key.Matches(msg, m.keys.Select):
		if rec, ok := m.foods.Selected(); ok {
			return m.openDetail(rec)
		}
	case key.Matches(msg, m.keys.Down):
		m.foods.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.foods.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.foods.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.foods.HalfPageDown(m.height / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.foods.HalfPageUp(m.height / 2)
	}
	return m, nil
}

func (m Model) handleFoodDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.foodDetail == nil {
		m.screen = model.ScreenFoods
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenFoods
		m.foodDetail = nil
	case key.Matches(msg, m.keys.Edit):
		rec := m.foodDetail.food
		return m.openForm(&rec)
	case key.Matches(msg, m.keys.Delete):
		return m.openDeleteConfirm(m.foodDetail.food)
	}
	return m, nil
}

func (m Model) handleActivityNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Foods), key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenFoods
		return m, nil
	case key.Matches(msg, m.keys.ClearHistory):
		if m.activity != nil {
			return m, clearActivityCmd(m.activity)
		}
	}
	if m.activityView == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		m.activityView.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.activityView.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.activityView.JumpToBottom()
	}
	return m, nil
}
