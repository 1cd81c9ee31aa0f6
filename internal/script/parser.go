// Package script turns raw generated text into the structured dialogue model
// and back: parsing "Name: text" lines against the active roster, formatting
// the script for export and editing, and building the generation prompts.
package script

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/podsmith/podsmith/internal/session"
)

// ParseLines splits raw generated text into attributed dialogue lines.
//
// Each trimmed non-empty line is tested against every candidate speaker's
// "Name:" prefix in roster order; the first match wins, which doubles as the
// tie-break when one speaker's name is a prefix of another's. A match only
// counts if stripping the prefix leaves non-empty text. Unmatched lines are
// dropped and logged, never surfaced as errors. With an empty roster every
// line is unmatched and the result is empty.
//
// Line IDs are freshly generated on every call.
func ParseLines(raw string, roster []session.Speaker) []session.DialogueLine {
	var lines []session.DialogueLine

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		matched := false
		for _, sp := range roster {
			prefix := sp.Name + ":"
			if !strings.HasPrefix(trimmed, prefix) {
				continue
			}
			text := strings.TrimSpace(trimmed[len(prefix):])
			if text == "" {
				// A bare "Name:" with no content is not a dialogue line.
				continue
			}
			lines = append(lines, session.DialogueLine{
				ID:        uuid.NewString(),
				SpeakerID: sp.ID,
				Text:      text,
			})
			matched = true
			break
		}
		if !matched {
			log.Debug("skipping line without speaker prefix", "line", trimmed)
		}
	}

	return lines
}

// FormatScript renders the dialogue as the user-facing script text: one
// "Name: text" line per utterance, blank-line separated. This is the text
// written by export and opened by edit; voice directives never appear here.
func FormatScript(s *session.Session) string {
	parts := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		parts = append(parts, s.SpeakerName(l.SpeakerID)+": "+l.Text)
	}
	return strings.Join(parts, "\n\n")
}
