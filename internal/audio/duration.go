// Package audio measures and plays back synthesized audio artifacts.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/podsmith/podsmith/pkg/wav"
)

// secondsPerRune derives from an average narration pace of 220 characters
// per minute for Mandarin podcast speech.
const secondsPerRune = 60.0 / 220.0

// DefaultMeasureTimeout bounds how long a single measurement may take.
const DefaultMeasureTimeout = 10 * time.Second

// ErrMeasureTimeout indicates a measurement did not finish within the
// resolver's timeout.
var ErrMeasureTimeout = errors.New("audio duration measurement timed out")

// Resolver turns audio artifacts and script text into playback durations.
// Measured values come from decoding the artifact; estimates come from
// character count when only text is available.
type Resolver struct {
	// Timeout bounds each Measure call. Zero means DefaultMeasureTimeout.
	Timeout time.Duration
}

// NewResolver returns a Resolver with the default measurement timeout.
func NewResolver() *Resolver {
	return &Resolver{Timeout: DefaultMeasureTimeout}
}

// Estimate approximates speech duration from character count alone.
func (r *Resolver) Estimate(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * secondsPerRune
}

// Measure decodes the artifact and returns its playback duration in
// seconds. It gives up after the resolver's timeout or when ctx is
// canceled, whichever comes first.
func (r *Resolver) Measure(ctx context.Context, data []byte, ext string) (float64, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultMeasureTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		seconds float64
		err     error
	}
	ch := make(chan outcome, 1)
	go func() {
		seconds, err := decodeDuration(data, ext)
		ch <- outcome{seconds, err}
	}()

	select {
	case out := <-ch:
		return out.seconds, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, ErrMeasureTimeout
		}
		return 0, ctx.Err()
	}
}

func decodeDuration(data []byte, ext string) (float64, error) {
	switch ext {
	case "wav":
		info, err := wav.Parse(data)
		if err != nil {
			return 0, err
		}
		return info.Duration(), nil
	case "mp3":
		dec, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			return 0, fmt.Errorf("decoding mp3: %w", err)
		}
		// go-mp3 emits 16-bit stereo, so 4 bytes per output sample.
		return float64(dec.Length()) / float64(dec.SampleRate()*4), nil
	default:
		return 0, fmt.Errorf("cannot measure %q artifacts", ext)
	}
}
