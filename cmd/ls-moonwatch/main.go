// Command ls-moonwatch answers one question in your terminal: is the moon
// visible from where you are right now?
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-moonwatch/internal/config"
	"github.com/litescript/ls-moonwatch/internal/location"
	"github.com/litescript/ls-moonwatch/internal/logging"
	"github.com/litescript/ls-moonwatch/internal/moon"
	"github.com/litescript/ls-moonwatch/internal/sched"
	"github.com/litescript/ls-moonwatch/internal/state"
	"github.com/litescript/ls-moonwatch/internal/ui"
	"github.com/litescript/ls-moonwatch/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	nowMode       bool
	watchInterval time.Duration
	snapshotPath  string
)

const (
	defaultRefresh = 60 * time.Second
	minRefresh     = 10 * time.Second
	maxRefresh     = 10 * time.Minute
)

func main() {
	env := config.Load()

	refresh := flag.Duration("refresh", defaultRefresh, "Recompute interval (e.g., 60s, 5m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	lat := flag.Float64("lat", 0, "Observer latitude in degrees (use with -lon)")
	lon := flag.Float64("lon", 0, "Observer longitude in degrees (use with -lat)")
	city := flag.String("city", "", "Observe from a preset city instead of device location")
	flag.BoolVar(&summaryMode, "summary", false, "Print a text card instead of the TUI")
	flag.BoolVar(&nowMode, "now", false, "Single-line status mode")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 60s)")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.Parse()

	// Environment fills in what the command line left out.
	if !flagPassed("refresh") && env.Refresh > 0 {
		*refresh = env.Refresh
	}
	if !flagPassed("log-level") && env.LogLevel != "" {
		*logLevel = env.LogLevel
	}
	if !flagPassed("city") && *city == "" {
		*city = env.City
	}

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}
	if watchInterval > 0 && watchInterval < minRefresh {
		watchInterval = minRefresh
	}

	logger := logging.New(logging.ParseLevel(*logLevel))
	logger.Debug("ls-moonwatch v%s starting (refresh %s)", version.Version, *refresh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Resolve any fixed location before starting; device location stays nil
	// and is resolved by the scheduler (or headless path) at compute time.
	fixed, err := fixedSelection(*city, *lat, *lon, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	calc := moon.NewCalculator(nil)
	locator := location.NewLocator()
	geocoder := location.NewGeocoder()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateMgr := state.NewManager(stateCfg)

	headless := summaryMode || nowMode || snapshotPath != ""
	if headless {
		runHeadless(ctx, calc, locator, geocoder, fixed, logger)
		return
	}

	scheduler := sched.New(sched.Config{
		Calculator: calc,
		Locator:    locator,
		Geocoder:   geocoder,
		State:      stateMgr,
		Logger:     logger,
	})
	if fixed != nil {
		scheduler.Select(*fixed)
	}

	p := tea.NewProgram(ui.New(scheduler), tea.WithAltScreen())

	// Rewire notifications into the running program. Start after NewProgram
	// so the first snapshot has somewhere to land.
	scheduler.SetNotify(func(snap state.Snapshot) {
		p.Send(ui.StateMsg{Snapshot: snap})
	})
	scheduler.Start(ctx)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// fixedSelection resolves -city / -lat / -lon / env into a selection, or nil
// when the device location should be used.
func fixedSelection(city string, lat, lon float64, env config.Config) (*location.Selection, error) {
	if flagPassed("lat") != flagPassed("lon") {
		return nil, fmt.Errorf("-lat and -lon must be used together")
	}

	if flagPassed("lat") {
		coord := moon.Coordinate{LatDeg: lat, LonDeg: lon}
		if err := coord.Validate(); err != nil {
			return nil, err
		}
		sel := location.Selection{Kind: location.KindPreset, Coordinate: coord}
		return &sel, nil
	}

	if city != "" {
		c, ok := location.FindCity(city)
		if !ok {
			return nil, fmt.Errorf("unknown city %q (see the location picker for presets)", city)
		}
		sel := location.PresetSelection(c)
		return &sel, nil
	}

	if env.HasCoordinate() {
		coord := moon.Coordinate{LatDeg: *env.Latitude, LonDeg: *env.Longitude}
		if err := coord.Validate(); err != nil {
			return nil, err
		}
		sel := location.Selection{Kind: location.KindPreset, Coordinate: coord}
		return &sel, nil
	}

	return nil, nil
}

func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

// runHeadless computes and prints without starting the TUI.
func runHeadless(ctx context.Context, calc *moon.Calculator, locator *location.Locator, geocoder *location.Geocoder, fixed *location.Selection, logger *logging.Logger) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	var sel location.Selection
	resolved := false

	outputOnce := func() error {
		if fixed != nil {
			sel = *fixed
			resolved = true
		} else if !resolved {
			s, err := locator.Locate(ctx)
			if err != nil {
				return err
			}
			sel = s
			resolved = true
		}

		obs, err := calc.Observation(time.Now(), sel.Coordinate)
		if err != nil {
			return err
		}

		place := sel.Name
		if place == "" && geocoder != nil {
			if name, gerr := geocoder.Reverse(ctx, sel.Coordinate); gerr == nil {
				sel.Name = name
				place = name
			} else {
				logger.Debug("Reverse geocoding failed: %v", gerr)
			}
		}

		if nowMode {
			moon.WriteNowPlaying(os.Stdout, obs)
			return nil
		}

		if snapshotPath != "" {
			export := moon.ExportSnapshot(obs, place, time.Now())
			if snapshotPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			moon.WriteSummary(os.Stdout, obs, place)
		}

		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// On a terminal the summary behaves like a live card; piped
			// output gets a blank separator line instead.
			if summaryMode && isTTY {
				fmt.Print("\033[H\033[2J")
			} else if !nowMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
