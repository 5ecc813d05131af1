package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	err   lipgloss.Style
	ok    lipgloss.Style
	muted lipgloss.Style
}

// newStyles binds styles to out so colours are dropped when out is not a
// terminal.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label: r.NewStyle().Bold(true),
		err:   r.NewStyle().Foreground(lipgloss.Color("9")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		muted: r.NewStyle().Faint(true),
	}
}
