package maker

import (
	"log/slog"
	"sync/atomic"
)

// production holds the inverse of the process-wide dev flag so the zero
// value means dev mode is on.
var production atomic.Bool

// SetDev toggles definition validation for every Maker that does not set
// WithDevMode explicitly. Call it once during start-up.
func SetDev(enabled bool) {
	production.Store(!enabled)
}

// DevMode reports the process-wide dev flag.
func DevMode() bool {
	return !production.Load()
}

// Option customises a Maker.
type Option func(*Maker)

// WithLogger routes validation warnings to logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(mk *Maker) {
		mk.logger = logger
	}
}

// WithDevMode overrides the process-wide dev flag for this Maker.
func WithDevMode(enabled bool) Option {
	return func(mk *Maker) {
		mk.dev = &enabled
	}
}
