// Package progress provides the volume unlocker's best-effort progress
// reporting: a small callback interface plus the speed/ETA formatting
// helpers the CLI uses to render it.
//
// Grounded on the teacher's internal/app.UIReporter (side-effect-only
// callback struct implementing volume.ProgressReporter) and its
// internal/util/format.go (Statify/Timeify), adapted from a byte-copy
// progress bar to the unlock probe's (variant, hash, cascade) trial
// counter.
package progress

import (
	"fmt"
	"math"
	"time"

	"tcrecover/internal/tclog"
)

// Reporter receives best-effort, synchronous progress notifications
// during the unlock probe (spec.md §5: "invoked synchronously and
// must not mutate the unlocker state"). A nil Reporter is valid and
// silently ignored.
type Reporter interface {
	// SetStatus reports a human-readable phase description, e.g.
	// "trying SHA-1 / normal".
	SetStatus(text string)
	// SetProgress reports fractional completion (0.0-1.0) of the
	// trial space alongside a short info string.
	SetProgress(fraction float32, info string)
}

// Null is a Reporter that discards every call.
type Null struct{}

func (Null) SetStatus(string)            {}
func (Null) SetProgress(float32, string) {}

// report calls r's methods if r is non-nil, so callers never need a
// nil check (spec.md §7: "failures in the reporter must not abort the
// unlock" — a nil Reporter is the trivial case of that contract). A
// panic in either method is recovered and logged via tclog.
func report(r Reporter, status string, fraction float32, info string) {
	if r == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			tclog.Warn("progress reporter panicked", tclog.String("panic", fmt.Sprint(p)))
		}
	}()
	r.SetStatus(status)
	r.SetProgress(fraction, info)
}

// Report is the package-level convenience wrapper around report, used
// by internal/volume's unlock loop.
func Report(r Reporter, status string, fraction float32, info string) {
	report(r, status, fraction, info)
}

// Statify converts a count of trials completed, the total trial
// count, and a start time into (fraction, trials/sec, ETA string).
func Statify(done, total int, start time.Time) (float32, float64, string) {
	if total <= 0 {
		return 0, 0, "00:00:00"
	}

	fraction := float32(done) / float32(total)

	elapsed := time.Since(start).Seconds()
	if elapsed <= 0 {
		return float32(math.Min(float64(fraction), 1)), 0, "00:00:00"
	}

	rate := float64(done) / elapsed

	var eta int
	if rate > 0 {
		eta = int(math.Floor(float64(total-done) / rate))
	}

	return float32(math.Min(float64(fraction), 1)), rate, Timeify(eta)
}

// Timeify renders a count of seconds as "HH:MM:SS".
func Timeify(seconds int) string {
	hours := int(math.Max(math.Floor(float64(seconds)/3600), 0))
	seconds %= 3600
	minutes := int(math.Max(math.Floor(float64(seconds)/60), 0))
	seconds %= 60
	seconds = int(math.Max(float64(seconds), 0))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
