package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-moonwatch/internal/location"
	"github.com/litescript/ls-moonwatch/internal/moon"
	"github.com/litescript/ls-moonwatch/internal/state"
)

// Altitude tier colors, high to below-horizon.
const (
	colorAltHigh   = "#7CFC00"
	colorAltMedium = "#FFD700"
	colorAltLow    = "#FF6347"
	colorAltNone   = "#444444"
)

var (
	cardBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(1, 3)

	upBannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	downBannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("244"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))
)

// CardModel is the main moon visibility card.
type CardModel struct {
	width  int
	height int
}

// NewCardModel creates the card view.
func NewCardModel() CardModel {
	return CardModel{}
}

// SetSize updates the viewport size.
func (m CardModel) SetSize(width, height int) CardModel {
	m.width = width
	m.height = height
	return m
}

// View renders the card for the given snapshot. now drives the countdowns.
func (m CardModel) View(snap state.Snapshot, now time.Time) string {
	if snap.Status == state.StatusFailed {
		return renderError(snap.Err)
	}

	if snap.Observation == nil {
		return dimStyle.Render("Computing moon position...")
	}

	obs := *snap.Observation
	phase := moon.PhaseOf(obs.Phase)

	var b strings.Builder

	if obs.Visible {
		b.WriteString(upBannerStyle.Render("● THE MOON IS UP"))
	} else {
		b.WriteString(downBannerStyle.Render("○ The moon is below the horizon"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", phase.Icon(), phase))
	b.WriteString(renderIlluminationBar(obs.IlluminatedFraction, 20))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %.0f%% illuminated", obs.IlluminatedFraction*100)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Position  "))
	b.WriteString(renderPosition(obs))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Next rise "))
	b.WriteString(renderCountdown(obs.NextRise, now))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Next set  "))
	b.WriteString(renderCountdown(obs.NextSet, now))

	return cardBorderStyle.Render(b.String())
}

// renderError explains the failure and how to recover from it.
func renderError(err error) string {
	msg := "Something went wrong"
	hint := "Press r to retry."

	switch {
	case errors.Is(err, location.ErrUnavailable):
		msg = "Could not determine your location"
		hint = "Press r to retry, or l to pick a city."
	case errors.Is(err, moon.ErrEphemerisUnavailable):
		msg = "Moon data is unavailable"
	case errors.Is(err, moon.ErrInvalidCoordinate):
		msg = "That coordinate is not on Earth"
		hint = "Press l to pick a city."
	}

	detail := ""
	if err != nil {
		detail = "\n" + dimStyle.Render(err.Error())
	}

	return cardBorderStyle.Render(
		errorStyle.Render(msg) + detail + "\n\n" + dimStyle.Render(hint))
}

func renderPosition(obs moon.Observation) string {
	if !obs.Visible {
		return altitudeStyle(obs.AltitudeDeg).Render(
			fmt.Sprintf("%.1f° below horizon", -obs.AltitudeDeg))
	}
	return altitudeStyle(obs.AltitudeDeg).Render(
		fmt.Sprintf("%.1f° high, bearing %.0f° %s",
			obs.AltitudeDeg, obs.AzimuthDeg, moon.Compass(obs.AzimuthDeg)))
}

func renderCountdown(target *time.Time, now time.Time) string {
	rem := moon.TimeRemaining(target, now)
	if rem == nil {
		return dimStyle.Render("none within 7 days")
	}
	return fmt.Sprintf("%s %s", target.Local().Format("Mon 15:04"),
		dimStyle.Render(fmt.Sprintf("(in %dh %02dm)", rem.Hours, rem.Minutes)))
}

// renderIlluminationBar renders a fixed-width lit/unlit bar.
func renderIlluminationBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	lit := lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	bar := lit.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return "[" + bar + "]"
}

// altitudeStyle colors by how high the moon sits.
func altitudeStyle(altDeg float64) lipgloss.Style {
	var color string
	switch {
	case altDeg <= 0:
		color = colorAltNone
	case altDeg < 15:
		color = colorAltLow
	case altDeg < 45:
		color = colorAltMedium
	default:
		color = colorAltHigh
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
