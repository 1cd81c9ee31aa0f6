package voice

import (
	"strings"
	"testing"
)

func TestInstruction(t *testing.T) {
	tests := []struct {
		name    string
		speaker string
		style   Style
		want    string
	}{
		{
			name:    "all neutral yields empty directive",
			speaker: "Host Alpha",
			style:   Style{Emotion: EmotionNeutral, Pace: PaceNormal, Tone: ToneDefault, Emphasis: EmphasisNone},
			want:    "",
		},
		{
			name:    "zero value yields empty directive",
			speaker: "Host Alpha",
			style:   Style{},
			want:    "",
		},
		{
			name:    "single attribute",
			speaker: "Guest Beta",
			style:   Style{Emotion: EmotionExcited},
			want:    "Make Guest Beta sound excited.",
		},
		{
			name:    "all attributes joined with commas",
			speaker: "Host Alpha",
			style:   Style{Emotion: EmotionCalm, Pace: PaceSlow, Tone: ToneWarm, Emphasis: EmphasisGentle},
			want:    "Make Host Alpha sound calm and relaxed, speak slowly, keep a warm tone, add gentle emphasis to key words.",
		},
		{
			name:    "unknown values contribute nothing",
			speaker: "Host Alpha",
			style:   Style{Emotion: Emotion("bogus"), Pace: PaceFast},
			want:    "Make Host Alpha speak quickly.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Instruction(tt.speaker, tt.style); got != tt.want {
				t.Errorf("Instruction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstructionIsPure(t *testing.T) {
	s := Style{Emotion: EmotionCheerful, Tone: ToneCasual}
	first := Instruction("Host", s)
	for i := 0; i < 3; i++ {
		if got := Instruction("Host", s); got != first {
			t.Fatalf("Instruction() not idempotent: %q vs %q", got, first)
		}
	}
}

func TestIsNeutral(t *testing.T) {
	if !(Style{}).IsNeutral() {
		t.Error("zero style should be neutral")
	}
	if (Style{Pace: PaceSlow}).IsNeutral() {
		t.Error("styled speaker reported neutral")
	}
}

func TestSearch(t *testing.T) {
	all := Search("")
	if len(all) != len(Catalog()) {
		t.Fatalf("empty query returned %d options, want %d", len(all), len(Catalog()))
	}

	got := Search("wavenet")
	if len(got) == 0 {
		t.Fatal("Search(wavenet) returned nothing")
	}
	for _, o := range got {
		if !strings.Contains(strings.ToLower(o.ID+o.Name), "wavenet") {
			t.Errorf("unexpected match %+v", o)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("cmn-TW-Wavenet-A"); got != "Poised female (WaveNet)" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := DisplayName("custom-voice"); got != "custom-voice" {
		t.Errorf("DisplayName() fallback = %q, want raw id", got)
	}
}
