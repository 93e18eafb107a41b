package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-moonwatch/internal/moon"
	"github.com/litescript/ls-moonwatch/internal/state"
)

var detailTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

// DetailModel is the expanded lunar data dialog.
type DetailModel struct {
	width  int
	height int
}

// NewDetailModel creates the detail view.
func NewDetailModel() DetailModel {
	return DetailModel{}
}

// SetSize updates the viewport size.
func (m DetailModel) SetSize(width, height int) DetailModel {
	m.width = width
	m.height = height
	return m
}

// View renders the detail dialog.
func (m DetailModel) View(snap state.Snapshot, now time.Time) string {
	if snap.Status == state.StatusFailed {
		return renderError(snap.Err)
	}
	if snap.Observation == nil {
		return dimStyle.Render("Computing moon position...")
	}

	obs := *snap.Observation
	phase := moon.PhaseOf(obs.Phase)
	nextLabel, nextAt := moon.NextMajorPhase(obs.Phase, now)

	var b strings.Builder

	b.WriteString(detailTitleStyle.Render("Moon Detail"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Phase", fmt.Sprintf("%s %s (%.3f of cycle)", phase.Icon(), phase, obs.Phase)},
		{"Moon age", fmt.Sprintf("%.1f days", moon.AgeDays(obs.Phase))},
		{"Next major phase", fmt.Sprintf("%s on %s", nextLabel, nextAt.Local().Format("Jan 2 15:04"))},
		{"Illuminated", fmt.Sprintf("%.1f%%", obs.IlluminatedFraction*100)},
		{"Altitude", fmt.Sprintf("%.2f°", obs.AltitudeDeg)},
		{"Azimuth", fmt.Sprintf("%.2f° (%s)", obs.AzimuthDeg, moon.Compass(obs.AzimuthDeg))},
		{"Distance", fmt.Sprintf("%.0f km", obs.DistanceKm)},
		{"Parallactic angle", fmt.Sprintf("%.1f°", obs.ParallacticAngleDeg)},
	}

	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", r.label)))
		b.WriteString(r.value)
		b.WriteString("\n")
	}

	if spark := renderAltitudeSparkline(snap.AltitudeHistory); spark != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Altitude trend    "))
		b.WriteString(spark)
	}

	return cardBorderStyle.Render(b.String())
}

// sparkChars maps normalized altitude to a bar glyph.
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderAltitudeSparkline draws the recent altitude samples. Scale is fixed
// to ±90° so the horizon always falls mid-glyph, regardless of history.
func renderAltitudeSparkline(hist []state.AltitudePoint) string {
	if len(hist) < 2 {
		return ""
	}

	const maxPoints = 40
	if len(hist) > maxPoints {
		hist = hist[len(hist)-maxPoints:]
	}

	var b strings.Builder
	for _, p := range hist {
		norm := (p.AltitudeDeg + 90) / 180
		idx := int(norm * float64(len(sparkChars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteString(altitudeStyle(p.AltitudeDeg).Render(string(sparkChars[idx])))
	}
	return b.String()
}
