// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-moonwatch/internal/location"
	"github.com/litescript/ls-moonwatch/internal/state"
	"github.com/litescript/ls-moonwatch/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewCard ViewMode = iota
	ViewDetail
	ViewPicker
)

// Msg types for Bubble Tea.
type (
	// TickMsg drives countdown updates once a second.
	TickMsg time.Time

	// StateMsg signals a new state snapshot from the scheduler.
	StateMsg struct {
		Snapshot state.Snapshot
	}
)

// Controller is the command surface the UI drives: manual refresh and
// location switching. The scheduler implements it.
type Controller interface {
	Refresh()
	Select(sel location.Selection)
	SelectDevice()
}

// Shared styles.
var (
	appTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	placeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Model is the root Bubble Tea model.
type Model struct {
	ctrl Controller

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	card   CardModel
	detail DetailModel
	picker PickerModel

	snapshot state.Snapshot
	now      time.Time
}

// New creates the root UI model.
func New(ctrl Controller) Model {
	return Model{
		ctrl:     ctrl,
		viewMode: ViewCard,
		card:     NewCardModel(),
		detail:   NewDetailModel(),
		picker:   NewPickerModel(),
		now:      time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - 5 // header and footer
		m.card = m.card.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.picker = m.picker.SetSize(msg.Width, contentHeight)

	case TickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case StateMsg:
		m.snapshot = msg.Snapshot
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewMode == ViewPicker {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "l":
			m.viewMode = ViewCard
			return m, nil
		}

		var picked *PickResult
		m.picker, picked = m.picker.Update(msg)
		if picked != nil {
			if picked.Device {
				m.ctrl.SelectDevice()
			} else {
				m.ctrl.Select(location.PresetSelection(picked.City))
			}
			m.viewMode = ViewCard
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.viewMode == ViewCard {
			return m, tea.Quit
		}
		m.viewMode = ViewCard

	case "esc":
		m.viewMode = ViewCard

	case "r":
		m.ctrl.Refresh()

	case "l":
		m.viewMode = ViewPicker

	case "d", "enter":
		m.viewMode = ViewDetail

	case "tab":
		if m.viewMode == ViewCard {
			m.viewMode = ViewDetail
		} else {
			m.viewMode = ViewCard
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting up..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.viewMode {
	case ViewDetail:
		b.WriteString(m.detail.View(m.snapshot, m.now))
	case ViewPicker:
		b.WriteString(m.picker.View())
	default:
		b.WriteString(m.card.View(m.snapshot, m.now))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	title := appTitleStyle.Render("🌙 ls-moonwatch") + dimStyle.Render(" v"+version.Version)

	place := m.snapshot.Selection.Label()
	if place == "" {
		place = "locating..."
	}

	status := ""
	if m.snapshot.Status == state.StatusLoading {
		status = dimStyle.Render("  refreshing...")
	}

	return title + "  " + placeStyle.Render(place) + status
}

func (m Model) renderFooter() string {
	keys := []string{"r refresh", "l location", "d detail", "q quit"}
	if m.viewMode != ViewCard {
		keys = []string{"esc back", "r refresh", "q quit"}
	}
	if m.viewMode == ViewPicker {
		keys = []string{"↑/↓ move", "enter select", "esc back"}
	}

	line := helpKeyStyle.Render(strings.Join(keys, "  ·  "))
	if !m.snapshot.LastComputed.IsZero() {
		line += dimStyle.Render(fmt.Sprintf("  ·  updated %s", m.snapshot.LastComputed.Format("15:04:05")))
	}
	return line
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
