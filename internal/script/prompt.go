package script

import (
	"fmt"
	"strings"

	"github.com/podsmith/podsmith/internal/session"
	"github.com/podsmith/podsmith/internal/voice"
)

// GenerationPrompt builds the script-generation request text from the
// session's source material, style notes and active roster. content should
// already be reduced to plain text.
func GenerationPrompt(s *session.Session, content string) string {
	active := s.ActiveSpeakers()

	names := make([]string, 0, len(active))
	details := make([]string, 0, len(active))
	for _, sp := range active {
		names = append(names, sp.Name)
		details = append(details, fmt.Sprintf("%s (%s style)", sp.Name, voice.DisplayName(sp.Voice)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional podcast scriptwriter. Write an engaging dialogue script for %d host(s) (%s) based on the source content, style notes and brand profile below.\n\n",
		len(active), strings.Join(names, " and "))

	fmt.Fprintf(&b, "Source content:\n```\n%s\n```\n\n", content)
	if s.StyleNotes != "" {
		fmt.Fprintf(&b, "Style notes:\n%s\n\n", s.StyleNotes)
	}
	if s.BrandProfile != "" {
		fmt.Fprintf(&b, "Brand profile:\n%s\n\n", s.BrandProfile)
	}
	fmt.Fprintf(&b, "Host details (style reference only; use the exact names below as speaker labels):\n%s\n", strings.Join(details, ", "))
	if s.TargetMinutes > 0 {
		fmt.Fprintf(&b, "\nKeep the script's spoken length close to %g minutes.\n", s.TargetMinutes)
	}

	b.WriteString(`
Output rules:
1. Output nothing but host dialogue.
2. Every line must follow the exact format: SpeakerName: dialogue text.
3. Never emit non-dialogue elements: no preambles, episode titles, scene descriptions, sound cues or visual separators.
4. The very first line of the response must already be the first host's first utterance in the format above.
5. Keep the dialogue natural, listener-directed and on-brand.
`)
	return b.String()
}

// SEOPrompt builds the metadata-generation request for the finished script.
func SEOPrompt(scriptText string) string {
	return fmt.Sprintf(`Based on the podcast script below, produce an SEO-optimized meta title (at most 60 characters) and meta description (at most 160 characters) in the script's language.
Return JSON with exactly two keys, "title" and "description".

Podcast script:
`+"```\n%s\n```", scriptText)
}
