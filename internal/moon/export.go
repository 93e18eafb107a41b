package moon

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// SnapshotExport is the JSON-serializable representation of an observation.
type SnapshotExport struct {
	Time                time.Time  `json:"time"`
	GeneratedAt         time.Time  `json:"generated_at"`
	Place               string     `json:"place,omitempty"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	Visible             bool       `json:"visible"`
	AltitudeDeg         float64    `json:"altitude_deg"`
	AzimuthDeg          float64    `json:"azimuth_deg"`
	Compass             string     `json:"compass"`
	Phase               float64    `json:"phase"`
	PhaseName           string     `json:"phase_name"`
	IlluminatedFraction float64    `json:"illuminated_fraction"`
	AgeDays             float64    `json:"age_days"`
	DistanceKm          float64    `json:"distance_km"`
	NextRise            *time.Time `json:"next_rise,omitempty"`
	NextSet             *time.Time `json:"next_set,omitempty"`
}

// ExportSnapshot converts an observation to an exportable format.
func ExportSnapshot(obs Observation, place string, generatedAt time.Time) *SnapshotExport {
	return &SnapshotExport{
		Time:                obs.Time,
		GeneratedAt:         generatedAt,
		Place:               place,
		Latitude:            obs.Coordinate.LatDeg,
		Longitude:           obs.Coordinate.LonDeg,
		Visible:             obs.Visible,
		AltitudeDeg:         obs.AltitudeDeg,
		AzimuthDeg:          obs.AzimuthDeg,
		Compass:             Compass(obs.AzimuthDeg),
		Phase:               obs.Phase,
		PhaseName:           PhaseOf(obs.Phase).String(),
		IlluminatedFraction: obs.IlluminatedFraction,
		AgeDays:             AgeDays(obs.Phase),
		DistanceKm:          obs.DistanceKm,
		NextRise:            obs.NextRise,
		NextSet:             obs.NextSet,
	}
}

// WriteJSON writes the snapshot as indented JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummary writes a text card for the observation.
func WriteSummary(w io.Writer, obs Observation, place string) {
	where := place
	if where == "" {
		where = obs.Coordinate.String()
	}

	phase := PhaseOf(obs.Phase)

	fmt.Fprintf(w, "Moon @ %s — %s\n", where, obs.Time.Local().Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(w, strings.Repeat("─", 56))

	if obs.Visible {
		fmt.Fprintf(w, "Up: yes   Alt %.1f°   Az %.1f° (%s)\n",
			obs.AltitudeDeg, obs.AzimuthDeg, Compass(obs.AzimuthDeg))
	} else {
		fmt.Fprintf(w, "Up: no    Alt %.1f° (below horizon)\n", obs.AltitudeDeg)
	}

	fmt.Fprintf(w, "Phase: %s %s   %.0f%% lit   %.1f days old\n",
		phase.Icon(), phase, obs.IlluminatedFraction*100, AgeDays(obs.Phase))

	fmt.Fprintf(w, "Next rise: %s\n", formatEvent(obs.NextRise, obs.Time))
	fmt.Fprintf(w, "Next set:  %s\n", formatEvent(obs.NextSet, obs.Time))
}

// WriteNowPlaying writes a single status line.
func WriteNowPlaying(w io.Writer, obs Observation) {
	phase := PhaseOf(obs.Phase)

	if obs.Visible {
		fmt.Fprintf(w, "%s %s · up · %.0f° %s · %.0f%% lit\n",
			phase.Icon(), phase, obs.AltitudeDeg, Compass(obs.AzimuthDeg),
			obs.IlluminatedFraction*100)
		return
	}

	next := "no rise within a week"
	if rem := TimeRemaining(obs.NextRise, obs.Time); rem != nil {
		next = fmt.Sprintf("rises in %dh %02dm", rem.Hours, rem.Minutes)
	}
	fmt.Fprintf(w, "%s %s · down · %s · %.0f%% lit\n",
		phase.Icon(), phase, next, obs.IlluminatedFraction*100)
}

func formatEvent(ev *time.Time, now time.Time) string {
	if ev == nil {
		return "none within 7 days"
	}
	s := ev.Local().Format("Mon 15:04")
	if rem := TimeRemaining(ev, now); rem != nil {
		s += fmt.Sprintf(" (in %dh %02dm)", rem.Hours, rem.Minutes)
	}
	return s
}
