// Package session holds the working state of one podcast production run:
// the speaker roster, the parsed dialogue lines, the per-line audio duration
// map and the source material. State lives in a JSON snapshot on disk so
// that every subcommand operates on the same session.
package session

import (
	"github.com/podsmith/podsmith/internal/voice"
)

// Mode selects the conversation topology for generation and synthesis.
type Mode string

const (
	// ModeSingle scripts and voices a single host.
	ModeSingle Mode = "single-speaker"
	// ModeMulti scripts a conversation between every speaker in the roster.
	ModeMulti Mode = "multi-speaker"
)

// UnknownSpeakerName is the display name used when a dialogue line references
// a speaker that is no longer in the roster. Dangling references are resolved
// to this fallback, never surfaced as an error.
const UnknownSpeakerName = "Unknown Speaker"

// Speaker is one member of the roster.
type Speaker struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Voice string      `json:"voice"`
	Style voice.Style `json:"style,omitempty"`
}

// DialogueLine is one attributed utterance of the script. The SpeakerID is a
// weak reference resolved against the current roster. Text is never empty
// for a persisted line; empty candidates are dropped at parse time.
type DialogueLine struct {
	ID        string `json:"id"`
	SpeakerID string `json:"speaker_id"`
	Text      string `json:"text"`
}

// Source is the web content handed to the script generator.
type Source struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}

// Meta is the SEO metadata produced for the finished script.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DurationSource records how a duration value was obtained.
type DurationSource string

const (
	// SourceMeasured means the value was decoded from the rendered audio.
	SourceMeasured DurationSource = "measured"
	// SourceEstimated means the value was derived from text length.
	SourceEstimated DurationSource = "estimated"
)

// FailedSeconds marks a duration measurement that was attempted and failed.
// A map entry with this value is distinguishable from an absent key, which
// means "not yet attempted".
const FailedSeconds float64 = -1

// Duration is the recorded playback time of one dialogue line's audio.
type Duration struct {
	Seconds float64        `json:"seconds"`
	Source  DurationSource `json:"source"`
}

// OK reports whether the duration is usable for precise timing.
func (d Duration) OK() bool {
	return d.Seconds >= 0
}

// Session is a snapshot of all mutable production state.
type Session struct {
	Mode          Mode                `json:"mode"`
	Speakers      []Speaker           `json:"speakers"`
	Lines         []DialogueLine      `json:"lines,omitempty"`
	Durations     map[string]Duration `json:"durations,omitempty"`
	Content       Source              `json:"content,omitempty"`
	SEO           *Meta               `json:"seo,omitempty"`
	StyleNotes    string              `json:"style_notes,omitempty"`
	BrandProfile  string              `json:"brand_profile,omitempty"`
	TargetMinutes float64             `json:"target_minutes,omitempty"`
}

// New returns a session with the default two-speaker roster in multi mode.
func New() *Session {
	return &Session{
		Mode:      ModeMulti,
		Speakers:  DefaultSpeakers(),
		Durations: map[string]Duration{},
	}
}

// DefaultSpeakers returns the starting roster: a host and a guest with
// distinct catalog voices.
func DefaultSpeakers() []Speaker {
	catalog := voice.Catalog()
	return []Speaker{
		{ID: "speaker1", Name: "Host Alpha", Voice: catalog[0].ID},
		{ID: "speaker2", Name: "Guest Beta", Voice: catalog[1].ID},
	}
}

// ActiveSpeakers returns the roster slice relevant to the current mode:
// only the first speaker in single mode, the whole roster otherwise.
func (s *Session) ActiveSpeakers() []Speaker {
	if s.Mode == ModeSingle && len(s.Speakers) > 0 {
		return s.Speakers[:1]
	}
	return s.Speakers
}

// SpeakerByID resolves a speaker reference against the roster.
func (s *Session) SpeakerByID(id string) (Speaker, bool) {
	for _, sp := range s.Speakers {
		if sp.ID == id {
			return sp, true
		}
	}
	return Speaker{}, false
}

// SpeakerName resolves a speaker reference to a display name, falling back
// to UnknownSpeakerName for dangling references.
func (s *Session) SpeakerName(id string) string {
	if sp, ok := s.SpeakerByID(id); ok {
		return sp.Name
	}
	return UnknownSpeakerName
}

// DistinctVoices counts the distinct speaker IDs referenced by the lines.
func (s *Session) DistinctVoices() int {
	seen := map[string]struct{}{}
	for _, l := range s.Lines {
		seen[l.SpeakerID] = struct{}{}
	}
	return len(seen)
}
