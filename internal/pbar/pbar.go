// Package pbar renders a single-line progress bar for long sector scans
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// State holds all the data needed to render the progress bar. Amounts are in
// whatever unit Format turns into text, sectors for a check.
type State struct {
	Total     int64
	Done      int64
	StartTime time.Time
	// Format renders an amount, the raw number when nil
	Format func(int64) string

	out          io.Writer
	lastUpdate   time.Time
	lastDone     int64
	now          func() time.Time
	renderedOnce bool
}

// New initializes a State writing to out
func New(out io.Writer, total int64, format func(int64) string) *State {
	return &State{
		Total:     total,
		StartTime: time.Now(),
		Format:    format,
		out:       out,
		now:       time.Now,
	}
}

func (s *State) format(n int64) string {
	if s.Format == nil {
		return fmt.Sprint(n)
	}
	return s.Format(n)
}

// Update records progress and renders when the refresh interval has passed
func (s *State) Update(done int64) {
	s.Done = done
	s.Render(false)
}

// Render prints the progress bar line. Unless force is set it is rate limited
// to MinRefreshRate.
func (s *State) Render(force bool) {
	now := s.now()
	if !force && s.renderedOnce && now.Sub(s.lastUpdate) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if s.Total > 0 {
		percentage = float64(s.Done) / float64(s.Total) * 100
	}
	filledLen := min(int(float64(barLength)*percentage/100), barLength)
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	etaStr := "calculating..."
	if s.renderedOnce {
		rate := float64(s.Done-s.lastDone) / now.Sub(s.lastUpdate).Seconds()
		if s.Done > 0 && rate > 0 {
			eta := time.Duration(float64(s.Total-s.Done) / rate * float64(time.Second))
			etaStr = fmt.Sprintf("%02d:%02d:%02d remaining", int(eta.Hours()), int(eta.Minutes())%60, int(eta.Seconds())%60)
		}
	}

	s.lastUpdate = now
	s.lastDone = s.Done
	s.renderedOnce = true

	// \r returns to the start of the line, trailing spaces clear a longer previous line
	fmt.Fprintf(s.out, "\r[%s] %3.0f%% (%s/%s) [%s]    ",
		bar,
		percentage,
		s.format(s.Done),
		s.format(s.Total),
		etaStr)
}

// Finish prints a newline, effectively finishing the progress bar output
func (s *State) Finish() {
	if s.renderedOnce {
		fmt.Fprintln(s.out)
	}
}
