package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Reporter implements progress.Reporter for terminal output, printing
// a single overwritten progress line — grounded on the teacher's
// internal/cli/reporter.go Reporter (same overwritten-line approach,
// same barWidth convention).
type Reporter struct {
	mu       sync.Mutex
	status   string
	fraction float32
	info     string
	quiet    bool
	lastLine int
}

// NewReporter creates a terminal reporter. If quiet, the progress line
// is never rendered.
func NewReporter(quiet bool) *Reporter {
	return &Reporter{quiet: quiet}
}

// SetStatus implements progress.Reporter.
func (r *Reporter) SetStatus(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = text
	r.render()
}

// SetProgress implements progress.Reporter.
func (r *Reporter) SetProgress(fraction float32, info string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fraction = fraction
	r.info = info
	r.render()
}

// render must be called with r.mu held.
func (r *Reporter) render() {
	if r.quiet {
		return
	}

	const barWidth = 30
	filled := int(r.fraction * float32(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)

	line := fmt.Sprintf("\r[%s] %s | %s", bar, r.info, r.status)
	if len(line) < r.lastLine {
		line += strings.Repeat(" ", r.lastLine-len(line))
	}
	r.lastLine = len(line)

	fmt.Fprint(os.Stderr, line)
}

// Finish prints a trailing newline to move past the progress line.
func (r *Reporter) Finish() {
	if !r.quiet {
		fmt.Fprintln(os.Stderr)
	}
}

// PrintError prints an error message to stderr.
func (r *Reporter) PrintError(format string, args ...any) {
	if !r.quiet && r.lastLine > 0 {
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintSuccess prints a success message to stderr, unless quiet.
func (r *Reporter) PrintSuccess(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
