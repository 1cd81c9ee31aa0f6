package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/podsmith/podsmith/pkg/wav"
)

// Play renders an audio artifact through the system audio device and blocks
// until playback finishes or ctx is canceled. Supported artifacts are the
// ones the pipeline produces: WAVE-containerized PCM and MP3.
func Play(ctx context.Context, data []byte, ext string) error {
	var (
		src        io.Reader
		sampleRate int
		channels   int
	)

	switch ext {
	case "wav":
		info, err := wav.Parse(data)
		if err != nil {
			return err
		}
		if info.Format.BitDepth != 16 {
			return fmt.Errorf("playback supports 16-bit PCM, got %d-bit", info.Format.BitDepth)
		}
		src = bytes.NewReader(data[wav.HeaderSize : wav.HeaderSize+info.DataLen])
		sampleRate = info.Format.SampleRate
		channels = info.Format.Channels
	case "mp3":
		dec, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decoding mp3: %w", err)
		}
		src = dec
		sampleRate = dec.SampleRate()
		channels = 2 // go-mp3 always emits stereo
	default:
		return fmt.Errorf("cannot play %q artifacts", ext)
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	player := otoCtx.NewPlayer(src)
	defer player.Close() //nolint:errcheck
	player.Play()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
