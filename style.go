package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

var (
	keywordStyle = lipgloss.NewStyle().Foreground(pick("#04B575", "#ECFD65"))
	subtleStyle  = lipgloss.NewStyle().Foreground(pick("#9B9B9B", "#5C5C5C"))
)

// pick chooses a color for the detected terminal background.
func pick(light, dark string) lipgloss.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

func keyword(s string) string {
	return keywordStyle.Render(s)
}

func subtle(s string) string {
	return subtleStyle.Render(s)
}

// paragraph wraps and indents help and status text to the detected terminal
// width, capped so long lines stay readable on wide terminals.
func paragraph(s string) string {
	w := terminalWidth()
	if w > 100 {
		w = 100
	}
	return indent.String(wordwrap.String(s, w-2), 2)
}
