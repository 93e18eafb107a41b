// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-moonwatch/internal/location"
	"github.com/litescript/ls-moonwatch/internal/moon"
)

// Status is the display-layer state machine. Every trigger (timer tick,
// manual refresh, location change) re-enters Loading; a computation either
// lands in Ready or Failed, never a mix of both.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AltitudePoint is one sample in the altitude history buffer.
type AltitudePoint struct {
	Time        time.Time
	AltitudeDeg float64
}

// Manager holds the current observation-or-error cell plus a short altitude
// history, with thread-safe access. The cell is always overwritten wholesale,
// never merged.
type Manager struct {
	mu sync.RWMutex

	status          Status
	current         *moon.Observation
	lastErr         error
	lastComputed    time.Time
	computeDuration time.Duration

	selection location.Selection

	altHistory    []AltitudePoint
	maxAltHistory int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxAltitudeHistory int
	RefreshInterval    time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxAltitudeHistory: 240, // 4 hours at one compute/min
		RefreshInterval:    60 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxHist := cfg.MaxAltitudeHistory
	if maxHist <= 0 {
		maxHist = 240
	}
	return &Manager{
		maxAltHistory:   maxHist,
		refreshInterval: cfg.RefreshInterval,
	}
}

// SetLoading marks a computation as in flight. The previous observation is
// kept visible until the attempt resolves.
func (m *Manager) SetLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusLoading
}

// SetSelection replaces the active location. The altitude history belongs to
// the old coordinate, so it is discarded.
func (m *Manager) SetSelection(sel location.Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = sel
	m.altHistory = nil
}

// SetPlaceName annotates the active selection with a geocoded name.
func (m *Manager) SetPlaceName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection.Name = name
}

// Selection returns the active location selection.
func (m *Manager) Selection() location.Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selection
}

// Update atomically replaces the cell with a successful observation.
func (m *Manager) Update(obs moon.Observation, computeDuration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = StatusReady
	m.current = &obs
	m.lastErr = nil
	m.lastComputed = time.Now()
	m.computeDuration = computeDuration

	m.altHistory = append(m.altHistory, AltitudePoint{
		Time:        obs.Time,
		AltitudeDeg: obs.AltitudeDeg,
	})
	if len(m.altHistory) > m.maxAltHistory {
		m.altHistory = m.altHistory[1:]
	}
}

// Fail atomically replaces the cell with an error. The prior observation is
// dropped: the display shows the latest result or the latest error, never
// both.
func (m *Manager) Fail(err error, computeDuration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = StatusFailed
	m.current = nil
	m.lastErr = err
	m.lastComputed = time.Now()
	m.computeDuration = computeDuration
}

// Snapshot is an immutable view of current state.
type Snapshot struct {
	Status          Status
	Observation     *moon.Observation
	Err             error
	Selection       location.Selection
	LastComputed    time.Time
	ComputeDuration time.Duration
	AltitudeHistory []AltitudePoint
	RefreshInterval time.Duration
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var obs *moon.Observation
	if m.current != nil {
		copied := *m.current
		obs = &copied
	}

	hist := make([]AltitudePoint, len(m.altHistory))
	copy(hist, m.altHistory)

	return Snapshot{
		Status:          m.status,
		Observation:     obs,
		Err:             m.lastErr,
		Selection:       m.selection,
		LastComputed:    m.lastComputed,
		ComputeDuration: m.computeDuration,
		AltitudeHistory: hist,
		RefreshInterval: m.refreshInterval,
	}
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once at least one computation has succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
