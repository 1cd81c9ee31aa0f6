package audio

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/podsmith/podsmith/pkg/wav"
)

func TestEstimate(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty text", text: "", want: 0},
		{name: "ascii", text: "hello", want: 5 * secondsPerRune},
		{name: "counts runes not bytes", text: "你好嗎", want: 3 * secondsPerRune},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Estimate(tt.text); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Estimate(%q) = %f, want %f", tt.text, got, tt.want)
			}
		})
	}
}

func TestMeasureWav(t *testing.T) {
	f := wav.DefaultFormat()
	pcm := make([]byte, f.ByteRate()/2) // exactly 0.5s
	data, err := wav.Encode(pcm, f)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := NewResolver().Measure(context.Background(), data, "wav")
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Measure() = %f, want 0.5", got)
	}
}

func TestMeasureUndecodable(t *testing.T) {
	r := NewResolver()

	if _, err := r.Measure(context.Background(), []byte("junk"), "wav"); err == nil {
		t.Error("Measure() accepted junk wav data")
	}
	if _, err := r.Measure(context.Background(), []byte("junk"), "mp3"); err == nil {
		t.Error("Measure() accepted junk mp3 data")
	}
	if _, err := r.Measure(context.Background(), []byte("junk"), "flac"); err == nil {
		t.Error("Measure() accepted an unsupported extension")
	}
}

func TestMeasureHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := wav.DefaultFormat()
	data, err := wav.Encode(make([]byte, f.BlockAlign()), f)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	r := &Resolver{Timeout: time.Minute}
	if _, err := r.Measure(ctx, data, "wav"); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Measure() error = %v, want nil or context.Canceled", err)
	}
}
