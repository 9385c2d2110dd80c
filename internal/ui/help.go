package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeInsert:
		return renderFormHelp(width)
	case model.ModeSearch:
		return renderSearchHelp(width)
	}

	keys := DefaultKeyMap()
	switch screen {
	case model.ScreenFoods:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("/", "search"),
			bindingHelp(keys.Add),
			bindingHelp(keys.Edit),
			bindingHelp(keys.Delete),
			helpKey("enter", "details"),
			helpKey("s/S", "sort"),
			helpKey("n/N", "filter"),
			bindingHelp(keys.Activity),
			helpKey("u/ctrl+r", "undo/redo"),
		}, width)
	case model.ScreenFoodDetail:
		return renderHelpLine([]string{
			helpKey("h/esc", "back"),
			bindingHelp(keys.Edit),
			bindingHelp(keys.Delete),
		}, width)
	case model.ScreenDeleteConfirm:
		confirm := DefaultConfirmKeyMap()
		return renderHelpLine([]string{
			bindingHelp(confirm.Confirm),
			bindingHelp(confirm.Cancel),
		}, width)
	case model.ScreenActivity:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			bindingHelp(keys.ClearHistory),
			bindingHelp(keys.Foods),
			helpKey("h/esc", "back"),
		}, width)
	default:
		return renderHelpLine([]string{
			helpKey("j/k", "navigate"),
			helpKey("q", "quit"),
		}, width)
	}
}

func renderFormHelp(width int) string {
	keys := DefaultFormKeyMap()
	return renderHelpLine([]string{
		bindingHelp(keys.NextField),
		bindingHelp(keys.PrevField),
		bindingHelp(keys.ToggleStatus),
		bindingHelp(keys.Save),
		bindingHelp(keys.Cancel),
	}, width)
}

func renderSearchHelp(width int) string {
	return renderHelpLine([]string{
		helpKey("type", "filter live"),
		helpKey("enter", "find meal"),
		helpKey("esc", "clear"),
	}, width)
}

func bindingHelp(b key.Binding) string {
	h := b.Help()
	return helpKey(h.Key, h.Desc)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	return FooterStyle.Width(width).Render(strings.Join(keys, "  "))
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"h / b / esc", "Go back"},
			{"l / enter", "Open details"},
			{"tab / shift+tab", "Cycle active column"},
			{": then 1-9", "Jump to column"},
			{"s / S", "Sort active column asc/desc"},
			{"c / C", "Hide active column / show all"},
			{"n / N", "Filter by selected value / clear"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"u / ctrl+r", "Undo / redo"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Foods"),
		helpSection([]helpItem{
			{"/", "Search by food or restaurant name"},
			{"enter (while searching)", "Find Meal on the server"},
			{"esc", "Clear search results"},
			{"a", "Add food"},
			{"e", "Edit selected food"},
			{"d", "Delete selected food"},
			{"R", "Refresh from the server"},
			{"A", "Activity log"},
		}),
		titleSection("Form"),
		helpSection([]helpItem{
			{"tab / ↓", "Next field"},
			{"shift+tab / ↑", "Previous field"},
			{"space / ← / →", "Toggle restaurant status"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(helpKey("esc", "close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
