package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpinnerProgressReporter prints pipeline stages as they complete and shows
// a spinner while a long-running step is in flight.
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	started time.Time
	pending bool
	title   cases.Caser
	verbose bool
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
// writing stage lines to stdout and the spinner to stderr.
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterWithWriter(os.Stdout, os.Stderr)
}

// NewSpinnerProgressReporterWithWriter creates a reporter with explicit outputs
func NewSpinnerProgressReporterWithWriter(out, spin io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(spin))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     out,
		spinner: s,
		title:   cases.Title(language.English),
	}
}

// WithStageNames prefixes every line with the stage that produced it
func (r *SpinnerProgressReporter) WithStageNames() *SpinnerProgressReporter {
	r.verbose = true
	return r
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Spinner {
		r.started = time.Now()
		r.pending = true
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	elapsed := ""
	if r.pending {
		r.pending = false
		r.spinner.Stop()
		elapsed = color.New(color.Faint).Sprintf(" (%s)", time.Since(r.started).Round(time.Millisecond))
	}

	if event.Message == "" {
		return
	}

	prefix := color.GreenString("✓") + " "
	if r.verbose && event.Stage != "" {
		prefix += color.New(color.FgYellow).Sprintf("[%s] ", r.stageName(event.Stage))
	}
	fmt.Fprintf(r.out, "%s%s%s\n", prefix, event.Message, elapsed)
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

// Stop halts the spinner if a step was left in flight
func (r *SpinnerProgressReporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = false
	r.spinner.Stop()
}

func (r *SpinnerProgressReporter) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// stageName turns "signer-resolved" into "Signer Resolved"
func (r *SpinnerProgressReporter) stageName(stage string) string {
	return r.title.String(strings.ReplaceAll(stage, "-", " "))
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
