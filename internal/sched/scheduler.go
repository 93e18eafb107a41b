// Package sched re-runs the visibility computation on a fixed cadence and
// on demand, feeding results to the display layer through the state manager.
package sched

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/litescript/ls-moonwatch/internal/location"
	"github.com/litescript/ls-moonwatch/internal/logging"
	"github.com/litescript/ls-moonwatch/internal/moon"
	"github.com/litescript/ls-moonwatch/internal/state"
)

// Notifier receives every state transition the scheduler produces.
type Notifier func(state.Snapshot)

// Config holds the scheduler's collaborators.
type Config struct {
	Calculator *moon.Calculator
	Locator    *location.Locator
	Geocoder   *location.Geocoder // optional, best-effort
	State      *state.Manager
	Logger     *logging.Logger
	Notify     Notifier
}

// Scheduler triggers recomputation from three sources: the periodic job,
// manual refresh, and location changes. All three feed one coalescing
// trigger channel, so a burst of requests collapses into a single
// computation and the most recent location request wins.
type Scheduler struct {
	calc     *moon.Calculator
	locator  *location.Locator
	geocoder *location.Geocoder
	st       *state.Manager
	logger   *logging.Logger

	cron    *gocron.Scheduler
	trigger chan struct{}

	notifyMu sync.RWMutex
	notify   Notifier

	mu            sync.Mutex
	pending       *location.Selection
	resolveDevice bool
	geocoded      bool
}

// New creates a scheduler. Until a location is selected, the first
// computation resolves the device location.
func New(cfg Config) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func(state.Snapshot) {}
	}
	return &Scheduler{
		calc:          cfg.Calculator,
		locator:       cfg.Locator,
		geocoder:      cfg.Geocoder,
		st:            cfg.State,
		logger:        logger,
		notify:        notify,
		trigger:       make(chan struct{}, 1),
		resolveDevice: true,
	}
}

// SetNotify replaces the notifier. Used when the display layer is built
// after the scheduler, as with a Bubble Tea program that needs the
// scheduler to construct its model.
func (s *Scheduler) SetNotify(n Notifier) {
	if n == nil {
		n = func(state.Snapshot) {}
	}
	s.notifyMu.Lock()
	s.notify = n
	s.notifyMu.Unlock()
}

func (s *Scheduler) notifier() Notifier {
	s.notifyMu.RLock()
	defer s.notifyMu.RUnlock()
	return s.notify
}

// Start performs an immediate computation and begins the periodic job.
// The scheduler shuts down when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron = gocron.NewScheduler(time.UTC)
	// Errors here would mean a non-positive interval, which the state
	// manager's default prevents.
	_, _ = s.cron.Every(s.st.RefreshInterval()).Do(s.Refresh)
	s.cron.StartAsync()

	s.Refresh()

	go s.run(ctx)
}

// Refresh requests a recomputation using the currently cached coordinate.
// Safe to call from any goroutine; concurrent requests coalesce.
func (s *Scheduler) Refresh() {
	select {
	case s.trigger <- struct{}{}:
	default:
		// A computation is already queued; this request rides along.
	}
}

// Select switches to a given location and recomputes immediately.
func (s *Scheduler) Select(sel location.Selection) {
	s.mu.Lock()
	s.pending = &sel
	s.resolveDevice = false
	s.mu.Unlock()
	s.Refresh()
}

// SelectDevice switches back to the device-reported location. The device is
// re-resolved once, on the next computation only; periodic ticks keep using
// the cached coordinate to avoid hammering the lookup service.
func (s *Scheduler) SelectDevice() {
	s.mu.Lock()
	s.pending = nil
	s.resolveDevice = true
	s.mu.Unlock()
	s.Refresh()
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Scheduler shutting down")
			s.cron.Stop()
			return
		case <-s.trigger:
			s.recompute(ctx)
		}
	}
}

// recompute performs one full attempt: resolve location if requested, run
// the calculator, annotate with a place name. The attempt is atomic for the
// display: it ends in exactly one Update or Fail.
func (s *Scheduler) recompute(ctx context.Context) {
	start := time.Now()
	notify := s.notifier()

	s.st.SetLoading()
	notify(s.st.Snapshot())

	s.mu.Lock()
	pending := s.pending
	resolveDevice := s.resolveDevice
	s.pending = nil
	s.resolveDevice = false
	s.mu.Unlock()

	switch {
	case pending != nil:
		s.st.SetSelection(*pending)
		s.setGeocoded(pending.Name != "")
	case resolveDevice:
		sel, err := s.locator.Locate(ctx)
		if err != nil {
			s.logger.Error("Device location failed: %v", err)
			// The location was never resolved, so the cached selection is
			// unusable. Re-arm resolution for the next attempt; a location
			// change that arrived meanwhile wins.
			s.mu.Lock()
			if s.pending == nil {
				s.resolveDevice = true
			}
			s.mu.Unlock()
			s.st.Fail(err, time.Since(start))
			notify(s.st.Snapshot())
			return
		}
		s.logger.Info("Device location resolved: %s", sel.Label())
		s.st.SetSelection(sel)
		s.setGeocoded(sel.Name != "")
	}

	sel := s.st.Selection()

	obs, err := s.calc.Observation(time.Now(), sel.Coordinate)
	if err != nil {
		s.logger.Error("Computation failed: %v", err)
		s.st.Fail(err, time.Since(start))
		notify(s.st.Snapshot())
		return
	}

	s.st.Update(obs, time.Since(start))

	// Best-effort place name; failure degrades to raw coordinates.
	if s.geocoder != nil && !s.isGeocoded() {
		if name, gerr := s.geocoder.Reverse(ctx, sel.Coordinate); gerr != nil {
			s.logger.Debug("Reverse geocoding failed: %v", gerr)
		} else {
			s.st.SetPlaceName(name)
			s.setGeocoded(true)
		}
	}

	s.logger.Debug("Computed observation in %v (alt %.1f°, visible=%v)",
		time.Since(start), obs.AltitudeDeg, obs.Visible)
	notify(s.st.Snapshot())
}

func (s *Scheduler) setGeocoded(v bool) {
	s.mu.Lock()
	s.geocoded = v
	s.mu.Unlock()
}

func (s *Scheduler) isGeocoded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geocoded
}
