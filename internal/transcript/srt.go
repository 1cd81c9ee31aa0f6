// Package transcript emits the time-coded SRT transcript derived from the
// dialogue lines and their resolved audio durations.
package transcript

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/podsmith/podsmith/internal/session"
)

// ErrEmptyScript indicates a transcript was requested with no script.
var ErrEmptyScript = errors.New("no script to export")

// MissingTimingError lists the 1-based script lines whose durations are
// absent or recorded as the measurement-failure sentinel. The transcript
// builder refuses to produce output with incomplete timing data; a stale or
// partial subtitle file would silently desynchronize from the audio.
type MissingTimingError struct {
	Lines []int
}

func (e *MissingTimingError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("incomplete timing data for line(s) %s - synthesize the audio first", strings.Join(parts, ", "))
}

// FormatTimestamp renders seconds as an SRT timestamp, HH:MM:SS,mmm with
// every field zero-padded. Milliseconds round to nearest, carrying into the
// seconds field at the boundary.
func FormatTimestamp(seconds float64) string {
	totalMillis := int64(math.Round(seconds * 1000))
	if totalMillis < 0 {
		totalMillis = 0
	}
	h := totalMillis / 3_600_000
	m := totalMillis % 3_600_000 / 60_000
	s := totalMillis % 60_000 / 1000
	ms := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// BuildSRT renders the session's dialogue as an SRT document.
//
// Every line must have a usable recorded duration; otherwise a
// MissingTimingError naming the offending lines is returned and no output
// is produced. Blocks are contiguous and non-overlapping: each line's end
// time is exactly the next line's start time, and the final end time equals
// the sum of all durations.
func BuildSRT(s *session.Session) (string, error) {
	if len(s.Lines) == 0 {
		return "", ErrEmptyScript
	}

	var missing []int
	for i, l := range s.Lines {
		if d, ok := s.Durations[l.ID]; !ok || !d.OK() {
			missing = append(missing, i+1)
		}
	}
	if len(missing) > 0 {
		return "", &MissingTimingError{Lines: missing}
	}

	var b strings.Builder
	cumulative := 0.0
	for i, l := range s.Lines {
		duration := s.Durations[l.ID].Seconds
		start := cumulative
		end := cumulative + duration

		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(start), FormatTimestamp(end))
		fmt.Fprintf(&b, "%s: %s\n\n", s.SpeakerName(l.SpeakerID), l.Text)

		cumulative = end
	}
	return b.String(), nil
}
