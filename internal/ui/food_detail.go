package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"foodctl/internal/food"
	"foodctl/internal/model"
	"foodctl/internal/util"
)

const (
	previewWidth  = 32
	previewHeight = 12
)

type previewKind int

const (
	previewFood previewKind = iota
	previewLogo
)

type previewLoadedMsg struct {
	id   string
	kind previewKind
	art  string
	err  error
}

type preview struct {
	loading bool
	art     string
	err     string
}

// FoodDetailModel represents the food detail screen.
type FoodDetailModel struct {
	food     model.FoodRecord
	previews [2]preview
}

// NewFoodDetailModel creates a new food detail model.
func NewFoodDetailModel(rec model.FoodRecord) *FoodDetailModel {
	return &FoodDetailModel{food: rec}
}

// LoadPreviews starts fetching both images. It returns nil without a previewer.
func (m *FoodDetailModel) LoadPreviews(p *ImagePreviewer, timeout time.Duration) tea.Cmd {
	if p == nil {
		return nil
	}
	m.previews[previewFood].loading = true
	m.previews[previewLogo].loading = true
	return tea.Batch(
		previewCmd(p, m.food.ID, previewFood, string(m.food.FoodImage), food.ImageFood, timeout),
		previewCmd(p, m.food.ID, previewLogo, food.RestaurantLogo(m.food), food.ImageRestaurant, timeout),
	)
}

func previewCmd(p *ImagePreviewer, id string, kind previewKind, ref string, class food.ImageClass, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		art, err := p.Preview(ctx, ref, class, previewWidth, previewHeight)
		return previewLoadedMsg{id: id, kind: kind, art: art, err: err}
	}
}

// ApplyPreview stores a finished preview. Results for another record are ignored.
func (m *FoodDetailModel) ApplyPreview(msg previewLoadedMsg) {
	if msg.id != m.food.ID {
		return
	}
	p := &m.previews[msg.kind]
	p.loading = false
	p.art = msg.art
	p.err = ""
	if msg.err != nil {
		p.err = msg.err.Error()
	}
}

// View renders the food detail.
func (m *FoodDetailModel) View(width, height int) string {
	r := m.food

	shortcuts := HelpDescStyle.Render("e edit  d delete  h back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	status := food.Status(r)
	fields := []string{
		renderField("Food", food.DishName(r)),
		renderField("Restaurant", food.RestaurantName(r)),
		renderField("Rating", util.FormatRatingWithStar(food.Rating(r))+"  "+util.FormatRatingStars(food.Rating(r))),
		renderField("Price", util.FormatPrice(food.Price(r))),
		renderField("Status", util.FormatStatusSymbol(status)+" "+util.FormatStatus(status)),
		renderField("Added", util.FormatDate(r.CreatedAt)+" ("+util.FormatCreatedAt(r.CreatedAt)+")"),
		renderField("Food image", food.FoodImage(r)),
		renderField("Logo", food.RestaurantLogoImage(r)),
	}

	sections := []string{strings.Join(fields, "\n")}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(0, width-8)))
	sections = append(sections, divider)

	sections = append(sections, lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderPreview("Food", m.previews[previewFood]),
		"    ",
		renderPreview("Restaurant", m.previews[previewLogo]),
	))

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func (m *FoodDetailModel) title() string {
	if name := food.DishName(m.food); name != "" {
		return name
	}
	return "Detail"
}

func renderPreview(title string, p preview) string {
	var body string
	switch {
	case p.loading:
		body = HelpDescStyle.Render("loading image…")
	case p.err != "":
		body = ErrorStyle.Render("image unavailable")
	case p.art != "":
		body = p.art
	default:
		body = HelpDescStyle.Render("no preview")
	}
	return lipgloss.JoinVertical(lipgloss.Left, LabelStyle.Render(title), body)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
