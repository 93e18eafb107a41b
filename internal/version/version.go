// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Detail dialog with altitude sparkline, location picker, reverse geocoding
// 0.2.0 - Headless modes (summary, now, JSON snapshot, watch), IP geolocation
// 0.1.0 - Initial release: moon card TUI, SunCalc ephemeris, rise/set forecasting
