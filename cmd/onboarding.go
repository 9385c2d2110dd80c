package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/api"
	"foodctl/internal/ui"
)

// OnboardingSettings records the first-run choices.
type OnboardingSettings struct {
	Completed  bool   `json:"completed"`
	APIBaseURL string `json:"api_base_url,omitempty"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	data, err := os.ReadFile(onboardingPath(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// validateAPIURL accepts absolute http(s) URLs.
func validateAPIURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("enter an http:// or https:// URL")
	}
	return raw, nil
}

type onboardingStep int

const (
	stepBackend onboardingStep = iota
	stepURL
	stepDone
)

type onboardingModel struct {
	step      onboardingStep
	useHosted bool
	urlInput  textinput.Model
	settings  OnboardingSettings
	inputErr  string
	status    string
	width     int
	height    int
}

var (
	obLabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorGold).
			Bold(true)

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ui.ColorMuted)

	obTabInactive = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Padding(0, 2)

	obTabActive = obTabInactive.
			Foreground(ui.ColorText).
			Bold(true).
			Underline(true)
)

func newOnboardingModel() onboardingModel {
	in := textinput.New()
	in.Placeholder = "https://example.mockapi.io"
	in.CharLimit = 300
	in.Prompt = "url> "
	in.TextStyle = lipgloss.NewStyle().Foreground(ui.ColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(ui.ColorText).Background(ui.ColorAccent)
	in.Focus()

	return onboardingModel{
		step:      stepBackend,
		useHosted: true,
		urlInput:  in,
		settings:  OnboardingSettings{Completed: true, APIBaseURL: api.DefaultBaseURL},
	}
}

func (m onboardingModel) Init() tea.Cmd { return nil }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.step {
		case stepBackend:
			switch msg.String() {
			case "up", "k", "left", "h":
				m.useHosted = true
				return m, nil
			case "down", "j", "right", "l":
				m.useHosted = false
				return m, nil
			case "enter":
				return m.nextStep()
			case "ctrl+c", "q":
				m.status = "Setup canceled. Using the hosted Food API."
				m.step = stepDone
				return m, tea.Quit
			default:
				return m, nil
			}
		case stepURL:
			switch msg.String() {
			case "enter":
				u, err := validateAPIURL(m.urlInput.Value())
				if err != nil {
					m.inputErr = err.Error()
					return m, nil
				}
				m.settings.APIBaseURL = u
				m.status = "Food API set to " + u
				m.step = stepDone
				return m, tea.Quit
			case "esc":
				m.status = "Skipped. Using the hosted Food API."
				m.step = stepDone
				return m, tea.Quit
			case "ctrl+c":
				m.status = "Setup canceled. Using the hosted Food API."
				m.step = stepDone
				return m, tea.Quit
			}
			m.inputErr = ""
			var cmd tea.Cmd
			m.urlInput, cmd = m.urlInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m onboardingModel) nextStep() (tea.Model, tea.Cmd) {
	if m.useHosted {
		m.settings.APIBaseURL = api.DefaultBaseURL
		m.status = "Using the hosted Food API."
		m.step = stepDone
		return m, tea.Quit
	}
	m.step = stepURL
	return m, nil
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	content := m.renderContent(width, max(8, height-6))
	screen := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(ui.ColorText).
		Width(width).
		Height(height).
		Render(screen)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + ui.LabelStyle.Render("foodctl") + " " + ui.HelpDescStyle.Render("› Setup")
	right := ui.HelpDescStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return ui.TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	backendTab := obTabInactive.Render("Backend")
	urlTab := obTabInactive.Render("API URL")
	if m.step == stepBackend {
		backendTab = obTabActive.Render("Backend")
	}
	if m.step == stepURL {
		urlTab = obTabActive.Render("API URL")
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, "  ", backendTab, urlTab))
}

func (m onboardingModel) renderFooter(width int) string {
	switch m.step {
	case stepBackend:
		return ui.FooterStyle.Width(width).Render("↑↓/jk to choose  enter to confirm  q cancel")
	case stepURL:
		return ui.FooterStyle.Width(width).Render("enter save  esc skip  ctrl+c cancel")
	default:
		return ui.FooterStyle.Width(width).Render("Setup complete")
	}
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	var body string
	switch m.step {
	case stepBackend:
		hosted := "Hosted Food API (" + api.DefaultBaseURL + ")"
		custom := "My own Food API"

		var hostedDisplay, customDisplay string
		if m.useHosted {
			hostedDisplay = "  " + ui.LabelStyle.Render("→ "+hosted)
			customDisplay = "    " + ui.NormalRowStyle.Render(custom)
		} else {
			hostedDisplay = "    " + ui.NormalRowStyle.Render(hosted)
			customDisplay = "  " + ui.LabelStyle.Render("→ "+custom)
		}

		body = lipgloss.JoinVertical(
			lipgloss.Left,
			obLabelStyle.Render("Which Food API should foodctl manage?"),
			"",
			hostedDisplay,
			customDisplay,
			"",
			ui.HelpDescStyle.Render("Run with -demo to try a local API with sample meals."),
			ui.HelpDescStyle.Render("You can change this later in ~/.foodctl/onboarding.json"),
		)
	case stepURL:
		input := ui.ActiveBorderStyle.Width(max(30, cardWidth-14)).Render(m.urlInput.View())
		lines := []string{
			obLabelStyle.Render("Food API base URL"),
			"",
			ui.HelpDescStyle.Render("The API must serve GET/POST /Food and GET/PUT/DELETE /Food/:id."),
			"",
			input,
		}
		if m.inputErr != "" {
			lines = append(lines, ui.FieldErrorStyle.Render(m.inputErr))
		}
		lines = append(lines, "", ui.HelpDescStyle.Render("Press Enter to save, Esc to use the hosted API."))
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	default:
		msg := ui.HelpDescStyle.Render(m.status)
		if strings.Contains(strings.ToLower(m.status), "canceled") {
			msg = ui.FieldErrorStyle.Render(m.status)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("Onboarding Complete"), "", msg)
	}

	card := ui.ModalStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func runOnboarding(configDir string) (OnboardingSettings, error) {
	prog := tea.NewProgram(newOnboardingModel(), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}
