package synth

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeName makes a speaker name safe for use in a filename: punctuation
// is stripped, whitespace runs collapse to a single underscore, and letters
// of any writing system (Han included) are kept as-is after NFC
// normalization.
func SanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range norm.NFC.String(name) {
		switch {
		case unicode.IsSpace(r):
			pendingSep = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SegmentFileName names one per-line audio artifact. index is 1-based.
func SegmentFileName(index int, speakerName, ext string) string {
	return fmt.Sprintf("podcast_segment_%02d_%s.%s", index, SanitizeName(speakerName), ext)
}
