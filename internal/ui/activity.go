package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"foodctl/internal/model"
)

const (
	activityLimit       = 200
	recentSearchesLimit = 5
)

type activityClearedMsg struct{}

// ActivityModel lists persisted notifications, newest first.
type ActivityModel struct {
	entries  []model.ActivityEntry
	searches []string
	cursor   int
	offset   int

	viewportHeight int
}

// NewActivityModel creates a new activity model.
func NewActivityModel(entries []model.ActivityEntry, searches []string) *ActivityModel {
	return &ActivityModel{entries: entries, searches: searches}
}

func loadActivityCmd(store ActivityStore) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.Recent(activityLimit)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load activity: %w", err)}
		}
		searches, err := store.RecentSearches(recentSearchesLimit)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load recent searches: %w", err)}
		}
		return model.ActivityLoadedMsg{Entries: entries, Searches: searches}
	}
}

func clearActivityCmd(store ActivityStore) tea.Cmd {
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to clear activity: %w", err)}
		}
		return activityClearedMsg{}
	}
}

// View renders the activity log.
func (m *ActivityModel) View(width, height int) string {
	var footer string
	if len(m.searches) > 0 {
		footer = LabelStyle.Render("Recent searches: ") + HelpDescStyle.Render(strings.Join(m.searches, ", "))
	}

	if len(m.entries) == 0 {
		msg := EmptyStateStyle.Render("No activity yet.")
		if footer != "" {
			msg = lipgloss.JoinVertical(lipgloss.Left, msg, StatusBarStyle.Render(footer))
		}
		return lipgloss.NewStyle().Width(width).Height(height).Render(msg)
	}

	visibleHeight := height - 2
	if footer != "" {
		visibleHeight--
	}
	visibleHeight = max(1, visibleHeight)
	m.viewportHeight = visibleHeight

	var lines []string
	for i := m.offset; i < len(m.entries) && i < m.offset+visibleHeight; i++ {
		e := m.entries[i]
		when := fmt.Sprintf("%-16s", humanize.Time(e.CreatedAt))
		line := kindSymbol(e.Kind) + " " + HelpDescStyle.Render(when) + " " + e.Message
		if i == m.cursor {
			line = SelectedRowStyle.Width(width - 2).Render(kindSymbol(e.Kind) + " " + when + " " + e.Message)
		}
		lines = append(lines, line)
	}

	status := StatusBarStyle.Render(fmt.Sprintf("%d entries  ·  row %d/%d", len(m.entries), m.cursor+1, len(m.entries)))
	parts := []string{strings.Join(lines, "\n")}
	used := lipgloss.Height(parts[0]) + lipgloss.Height(status)
	if footer != "" {
		used += lipgloss.Height(footer)
	}
	parts = append(parts, lipgloss.NewStyle().Height(max(0, height-used)).Render(""))
	if footer != "" {
		parts = append(parts, StatusBarStyle.Render(footer))
	}
	parts = append(parts, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func kindSymbol(kind model.NotificationKind) string {
	switch kind {
	case model.NotifySuccess:
		return lipgloss.NewStyle().Foreground(ColorGreen).Render("✓")
	case model.NotifyError:
		return lipgloss.NewStyle().Foreground(ColorRed).Render("✗")
	default:
		return lipgloss.NewStyle().Foreground(ColorYellow).Render("…")
	}
}

// MoveDown moves the cursor down.
func (m *ActivityModel) MoveDown() {
	if m.cursor < len(m.entries)-1 {
		m.cursor++
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *ActivityModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the newest entry.
func (m *ActivityModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the oldest entry.
func (m *ActivityModel) JumpToBottom() {
	if len(m.entries) == 0 {
		return
	}
	m.cursor = len(m.entries) - 1
	vh := m.viewportHeight
	if vh == 0 {
		vh = 10
	}
	if m.cursor >= vh {
		m.offset = m.cursor - vh + 1
	}
}
