package script

import (
	"strings"
	"testing"

	"github.com/podsmith/podsmith/internal/session"
)

var testRoster = []session.Speaker{
	{ID: "s1", Name: "Alice", Voice: "voice-a"},
	{ID: "s2", Name: "Bob", Voice: "voice-b"},
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		roster []session.Speaker
		want   []struct{ speakerID, text string }
	}{
		{
			name:   "well formed dialogue",
			raw:    "Alice: Hello there.\nBob: Hi Alice!",
			roster: testRoster,
			want: []struct{ speakerID, text string }{
				{"s1", "Hello there."},
				{"s2", "Hi Alice!"},
			},
		},
		{
			name:   "empty content after prefix is dropped",
			raw:    "Alice: Hello there.\nBob: \nAlice: Good to see you.",
			roster: testRoster,
			want: []struct{ speakerID, text string }{
				{"s1", "Hello there."},
				{"s1", "Good to see you."},
			},
		},
		{
			name:   "unmatched lines are dropped silently",
			raw:    "[intro music]\nAlice: Welcome back.\n---\nNarrator: not in roster",
			roster: testRoster,
			want: []struct{ speakerID, text string }{
				{"s1", "Welcome back."},
			},
		},
		{
			name:   "whitespace around lines and text is trimmed",
			raw:    "   Alice:   spaced out   \n\n\t\n",
			roster: testRoster,
			want: []struct{ speakerID, text string }{
				{"s1", "spaced out"},
			},
		},
		{
			name:   "empty roster is a no-op",
			raw:    "Alice: Hello there.",
			roster: nil,
			want:   nil,
		},
		{
			name: "sibling names with a shared stem do not collide",
			raw:  "Ann: short name line\nAnnabel: long name line",
			roster: []session.Speaker{
				{ID: "short", Name: "Ann"},
				{ID: "long", Name: "Annabel"},
			},
			want: []struct{ speakerID, text string }{
				{"short", "short name line"},
				{"long", "long name line"},
			},
		},
		{
			name: "line matching two prefixes resolves to the first-listed speaker",
			raw:  "Jo: Anne: nested colon line",
			roster: []session.Speaker{
				{ID: "jo", Name: "Jo"},
				{ID: "joanne", Name: "Jo: Anne"},
			},
			want: []struct{ speakerID, text string }{
				{"jo", "Anne: nested colon line"},
			},
		},
		{
			name: "tie-break follows roster order, not name length",
			raw:  "Jo: Anne: nested colon line",
			roster: []session.Speaker{
				{ID: "joanne", Name: "Jo: Anne"},
				{ID: "jo", Name: "Jo"},
			},
			want: []struct{ speakerID, text string }{
				{"joanne", "nested colon line"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLines(tt.raw, tt.roster)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseLines() returned %d lines, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].SpeakerID != w.speakerID || got[i].Text != w.text {
					t.Errorf("line %d = (%s, %q), want (%s, %q)",
						i, got[i].SpeakerID, got[i].Text, w.speakerID, w.text)
				}
				if got[i].Text == "" {
					t.Errorf("line %d has empty text", i)
				}
			}
		})
	}
}

func TestParseLinesGeneratesFreshIDs(t *testing.T) {
	raw := "Alice: Same input.\nBob: Same again."

	first := ParseLines(raw, testRoster)
	second := ParseLines(raw, testRoster)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("unexpected line counts: %d, %d", len(first), len(second))
	}
	for i := range first {
		if first[i].SpeakerID != second[i].SpeakerID || first[i].Text != second[i].Text {
			t.Errorf("parse is not content-idempotent at line %d", i)
		}
		if first[i].ID == second[i].ID {
			t.Errorf("line %d reused an ID across calls", i)
		}
	}

	seen := map[string]bool{}
	for _, l := range append(first, second...) {
		if seen[l.ID] {
			t.Errorf("duplicate line ID %s", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestFormatScript(t *testing.T) {
	s := session.New()
	s.Speakers = testRoster
	s.Lines = []session.DialogueLine{
		{ID: "l1", SpeakerID: "s1", Text: "Hello there."},
		{ID: "l2", SpeakerID: "gone", Text: "Orphaned line."},
	}

	got := FormatScript(s)
	want := "Alice: Hello there.\n\n" + session.UnknownSpeakerName + ": Orphaned line."
	if got != want {
		t.Errorf("FormatScript() = %q, want %q", got, want)
	}
}

func TestGenerationPromptMentionsTargetLength(t *testing.T) {
	s := session.New()
	s.TargetMinutes = 8

	prompt := GenerationPrompt(s, "some source material")
	if !strings.Contains(prompt, "8 minutes") {
		t.Error("prompt does not carry the target length instruction")
	}
	if !strings.Contains(prompt, "Host Alpha") || !strings.Contains(prompt, "Guest Beta") {
		t.Error("prompt does not name the active speakers")
	}

	s.TargetMinutes = 0
	prompt = GenerationPrompt(s, "some source material")
	if strings.Contains(prompt, "minutes") {
		t.Error("prompt carries a length instruction with no target set")
	}
}

func TestGenerationPromptSingleMode(t *testing.T) {
	s := session.New()
	s.Mode = session.ModeSingle

	prompt := GenerationPrompt(s, "content")
	if strings.Contains(prompt, "Guest Beta") {
		t.Error("single mode prompt mentions the inactive speaker")
	}
	if !strings.Contains(prompt, "1 host(s)") {
		t.Error("single mode prompt should address one host")
	}
}
