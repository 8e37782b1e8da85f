// Package timeouts defines shared durations used by the around client core.
// Keeping them together makes the timer behavior of popups and gateways
// discoverable in one place.
package timeouts

import "time"

// HTTPRequest caps a single request to the content or auth API.
const HTTPRequest = 15 * time.Second

// TooltipAutoClose is how long the registration result tooltip stays open.
const TooltipAutoClose = 2 * time.Second

// ViewportDebounce delays viewport width updates after the last resize event.
const ViewportDebounce = 150 * time.Millisecond

// TelemetryShutdown limits how long span export may block process exit.
const TelemetryShutdown = 5 * time.Second
