package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/podsmith/podsmith/internal/script"
	"github.com/podsmith/podsmith/internal/session"
)

const (
	maxTitleRunes       = 60
	maxDescriptionRunes = 160
)

// Some models wrap JSON replies in a markdown code fence.
var fenceRe = regexp.MustCompile("(?s)^```(?:\\w*)?\\s*\n?(.*?)\n?\\s*```$")

// StripFence removes a surrounding markdown code fence, if any.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// GenerateMeta produces SEO metadata for the finished script. The reply is
// expected to be JSON with title and description fields, possibly fenced;
// both fields are clamped to their SEO length limits.
func (c *Client) GenerateMeta(ctx context.Context, scriptText string) (session.Meta, error) {
	raw, err := c.Generate(ctx, script.SEOPrompt(scriptText), "json")
	if err != nil {
		return session.Meta{}, err
	}

	var meta session.Meta
	if err := json.Unmarshal([]byte(StripFence(raw)), &meta); err != nil {
		return session.Meta{}, fmt.Errorf("metadata reply is not valid JSON: %w", err)
	}
	if meta.Title == "" && meta.Description == "" {
		return session.Meta{}, ErrNoText
	}

	meta.Title = truncateRunes(strings.TrimSpace(meta.Title), maxTitleRunes)
	meta.Description = truncateRunes(strings.TrimSpace(meta.Description), maxDescriptionRunes)
	return meta, nil
}
