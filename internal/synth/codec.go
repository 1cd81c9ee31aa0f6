package synth

import (
	"errors"
	"mime"
	"strings"

	"github.com/podsmith/podsmith/pkg/wav"
)

// ErrNoAudioContent indicates a synthesis response with an absent or empty
// audio payload. The adapter never produces a zero-length artifact.
var ErrNoAudioContent = errors.New("synthesis response contained no audio content")

// Artifact is a playable, downloadable audio binary.
type Artifact struct {
	Data []byte
	Ext  string
}

// extensions maps provider MIME types to file extensions for payloads that
// are already playable containers.
var extensions = map[string]string{
	"audio/mpeg":  "mp3",
	"audio/mp3":   "mp3",
	"audio/ogg":   "ogg",
	"audio/wav":   "wav",
	"audio/wave":  "wav",
	"audio/x-wav": "wav",
}

// isPCM reports whether the MIME type declares raw linear PCM needing a
// container.
func isPCM(mimeType string) bool {
	return mimeType == "audio/pcm" ||
		mimeType == "audio/l16" ||
		strings.HasPrefix(mimeType, "audio/l16;")
}

// Containerize turns a provider payload into a playable artifact.
//
// Ready container formats pass through unchanged with a matching extension.
// Raw linear PCM is wrapped in a standard WAVE header using format, after
// which the artifact plays in any standard decoder. An empty payload is
// ErrNoAudioContent.
func Containerize(audio []byte, mimeType string, format wav.Format) (Artifact, error) {
	if len(audio) == 0 {
		return Artifact{}, ErrNoAudioContent
	}

	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if parsed, _, err := mime.ParseMediaType(normalized); err == nil {
		normalized = parsed
	}

	if isPCM(normalized) {
		data, err := wav.Encode(audio, format)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{Data: data, Ext: "wav"}, nil
	}

	ext, ok := extensions[normalized]
	if !ok {
		// Providers default to MP3 when they omit the MIME type.
		ext = "mp3"
	}
	return Artifact{Data: audio, Ext: ext}, nil
}
