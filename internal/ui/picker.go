package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-moonwatch/internal/location"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// PickResult is the user's location choice.
type PickResult struct {
	Device bool
	City   location.City
}

// PickerModel is the location selection dialog. Row 0 is the device
// location; the rest are the preset cities.
type PickerModel struct {
	cursor int
	width  int
	height int
}

// NewPickerModel creates the picker view.
func NewPickerModel() PickerModel {
	return PickerModel{}
}

// SetSize updates the viewport size.
func (m PickerModel) SetSize(width, height int) PickerModel {
	m.width = width
	m.height = height
	return m
}

// Update handles key input. A non-nil result means the user picked a row.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, *PickResult) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	total := len(location.Cities) + 1

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < total-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = total - 1
	case "enter":
		if m.cursor == 0 {
			return m, &PickResult{Device: true}
		}
		return m, &PickResult{City: location.Cities[m.cursor-1]}
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("Where are you watching from?"))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(location.Cities)+1)
	rows = append(rows, "📍 Use my location")
	for _, c := range location.Cities {
		rows = append(rows, "   "+c.Name)
	}

	// Scroll window keeps the cursor in view on short terminals.
	maxRows := m.height - 4
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("> " + rows[i]))
		} else {
			b.WriteString(rowStyle.Render("  " + rows[i]))
		}
		b.WriteString("\n")
	}

	if len(rows) > maxRows {
		b.WriteString(dimStyle.Render("\n  ↑/↓ to scroll"))
	}

	return b.String()
}
