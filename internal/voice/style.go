// Package voice maps speaker delivery settings onto the speech provider:
// a fixed catalog of provider voice identifiers, and a composer that turns
// style attributes into the natural-language directive the provider accepts.
package voice

import (
	"fmt"
	"strings"
)

// Emotion is the emotional register of a speaker's delivery.
type Emotion string

const (
	EmotionNeutral  Emotion = "neutral"
	EmotionExcited  Emotion = "excited"
	EmotionCalm     Emotion = "calm"
	EmotionSerious  Emotion = "serious"
	EmotionCheerful Emotion = "cheerful"
)

// Pace is the speaking speed of a speaker.
type Pace string

const (
	PaceNormal Pace = "normal"
	PaceSlow   Pace = "slow"
	PaceFast   Pace = "fast"
)

// Tone is the conversational tone of a speaker.
type Tone string

const (
	ToneDefault Tone = "default"
	ToneWarm    Tone = "warm"
	ToneFormal  Tone = "formal"
	ToneCasual  Tone = "casual"
)

// Emphasis controls how strongly key words are stressed.
type Emphasis string

const (
	EmphasisNone   Emphasis = "none"
	EmphasisStrong Emphasis = "strong"
	EmphasisGentle Emphasis = "gentle"
)

// Style bundles a speaker's delivery attributes. The zero value is treated
// the same as the explicit neutral sentinels.
type Style struct {
	Emotion  Emotion  `json:"emotion,omitempty"`
	Pace     Pace     `json:"pace,omitempty"`
	Tone     Tone     `json:"tone,omitempty"`
	Emphasis Emphasis `json:"emphasis,omitempty"`
}

// IsNeutral reports whether every attribute is at its default value.
func (s Style) IsNeutral() bool {
	return len(s.clauses()) == 0
}

// Fixed clause table. Unknown values contribute nothing so that a stale
// session file never breaks synthesis.
var (
	emotionClauses = map[Emotion]string{
		EmotionExcited:  "sound excited",
		EmotionCalm:     "sound calm and relaxed",
		EmotionSerious:  "sound serious",
		EmotionCheerful: "sound cheerful",
	}
	paceClauses = map[Pace]string{
		PaceSlow: "speak slowly",
		PaceFast: "speak quickly",
	}
	toneClauses = map[Tone]string{
		ToneWarm:   "keep a warm tone",
		ToneFormal: "keep a formal tone",
		ToneCasual: "keep a casual, conversational tone",
	}
	emphasisClauses = map[Emphasis]string{
		EmphasisStrong: "strongly emphasize key words",
		EmphasisGentle: "add gentle emphasis to key words",
	}
)

func (s Style) clauses() []string {
	var out []string
	if c, ok := emotionClauses[s.Emotion]; ok {
		out = append(out, c)
	}
	if c, ok := paceClauses[s.Pace]; ok {
		out = append(out, c)
	}
	if c, ok := toneClauses[s.Tone]; ok {
		out = append(out, c)
	}
	if c, ok := emphasisClauses[s.Emphasis]; ok {
		out = append(out, c)
	}
	return out
}

// Instruction composes the delivery directive for a speaker: a single
// sentence naming the speaker, or "" when every attribute is neutral.
// It is a pure function of its arguments; the directive is prepended to
// synthesis input and must never appear in the user-facing script.
func Instruction(speakerName string, s Style) string {
	clauses := s.clauses()
	if len(clauses) == 0 {
		return ""
	}
	return fmt.Sprintf("Make %s %s.", speakerName, strings.Join(clauses, ", "))
}
