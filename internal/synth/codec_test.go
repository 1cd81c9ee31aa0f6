package synth

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/podsmith/podsmith/pkg/wav"
)

func TestContainerizePassThrough(t *testing.T) {
	tests := []struct {
		name    string
		mime    string
		wantExt string
	}{
		{name: "mpeg audio", mime: "audio/mpeg", wantExt: "mp3"},
		{name: "mp3 alias", mime: "audio/mp3", wantExt: "mp3"},
		{name: "uppercase with params", mime: "Audio/MP3; rate=24000", wantExt: "mp3"},
		{name: "ogg", mime: "audio/ogg", wantExt: "ogg"},
		{name: "unknown defaults to mp3", mime: "audio/whatever", wantExt: "mp3"},
		{name: "missing mime defaults to mp3", mime: "", wantExt: "mp3"},
	}

	payload := []byte{0xFF, 0xFB, 0x90, 0x00, 0x01, 0x02}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Containerize(payload, tt.mime, wav.DefaultFormat())
			if err != nil {
				t.Fatalf("Containerize() error = %v", err)
			}
			if got.Ext != tt.wantExt {
				t.Errorf("ext = %q, want %q", got.Ext, tt.wantExt)
			}
			if !bytes.Equal(got.Data, payload) {
				t.Error("payload was not passed through unchanged")
			}
		})
	}
}

func TestContainerizePCM(t *testing.T) {
	pcm := make([]byte, 9600)
	f := wav.DefaultFormat()

	got, err := Containerize(pcm, "audio/L16; rate=24000", f)
	if err != nil {
		t.Fatalf("Containerize() error = %v", err)
	}
	if got.Ext != "wav" {
		t.Errorf("ext = %q, want wav", got.Ext)
	}
	if len(got.Data) != len(pcm)+wav.HeaderSize {
		t.Errorf("containerized length = %d, want %d", len(got.Data), len(pcm)+wav.HeaderSize)
	}
	if rate := binary.LittleEndian.Uint32(got.Data[28:32]); rate != 48000 {
		t.Errorf("declared byte rate = %d, want 48000", rate)
	}
	if !bytes.Equal(got.Data[wav.HeaderSize:], pcm) {
		t.Error("PCM payload not copied verbatim after header")
	}
}

func TestContainerizeEmptyPayload(t *testing.T) {
	for _, mime := range []string{"audio/mpeg", "audio/pcm", ""} {
		if _, err := Containerize(nil, mime, wav.DefaultFormat()); !errors.Is(err, ErrNoAudioContent) {
			t.Errorf("Containerize(nil, %q) error = %v, want ErrNoAudioContent", mime, err)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Host Alpha", "Host_Alpha"},
		{"主持人 Alpha", "主持人_Alpha"},
		{"D.J. Max!!", "DJ_Max"},
		{"  spaced   out  ", "spaced_out"},
		{"already_safe_42", "already_safe_42"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSegmentFileName(t *testing.T) {
	got := SegmentFileName(3, "Guest Beta", "mp3")
	if got != "podcast_segment_03_Guest_Beta.mp3" {
		t.Errorf("SegmentFileName() = %q", got)
	}
}
