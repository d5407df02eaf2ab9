package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var keywordStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

func keyword(s string) string {
	return keywordStyle.Render(s)
}

func paragraph(s string) string {
	return indent.String(wordwrap.String(s, 76), 2)
}
