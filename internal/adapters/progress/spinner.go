package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// SpinnerSink reports progress with a terminal spinner. When not
// interactive it prints one line per message instead.
type SpinnerSink struct {
	out         io.Writer
	interactive bool
	spinner     *spinner.Spinner
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	_ = s.Color("cyan", "bold")

	return &SpinnerSink{
		out:         out,
		interactive: interactive,
		spinner:     s,
	}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case "completed", "failed":
		s.stop()
		return
	}

	if !s.interactive {
		if event.Message != "" {
			fmt.Fprintln(s.out, event.Message)
		}
		return
	}

	if event.Spinner {
		s.spinner.Suffix = " " + event.Message
		if !s.spinner.Active() {
			s.spinner.Start()
		}
	} else {
		s.stop()
		if event.Message != "" {
			fmt.Fprintln(s.out, event.Message)
		}
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.pause(func() {
		fmt.Fprintln(s.out, color.New(color.FgCyan).Sprint(message))
	})
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.pause(func() {
		fmt.Fprintln(s.out, color.New(color.FgRed).Sprint(message))
	})
}

// pause stops the spinner while fn writes, then restarts it
func (s *SpinnerSink) pause(fn func()) {
	wasActive := s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}
	fn()
	if wasActive {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stop() {
	if s.spinner.Active() {
		s.spinner.Stop()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
