// Package output renders steamstats views as terminal strings.
//
// This package includes:
//   - The platform banner and the games table (boxed and fzf variants)
//   - The single-game panel used by the interactive preview
//   - Playtime history tables
//   - A spinner for the remote fetch
//
// Renderers return strings and never write to stdout themselves. Colour is
// decided once per invocation by a Theme.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects how a Theme decides whether to emit ANSI sequences.
type ColorMode int

const (
	// ColorAuto colours output only for a terminal with NO_COLOR unset.
	ColorAuto ColorMode = iota
	// ColorNever strips all styling.
	ColorNever
	// ColorAlways forces ANSI output, e.g. when piping into fzf --ansi.
	ColorAlways
)

// Palette, as 16-colour ANSI indices.
const (
	colorGreen   = lipgloss.Color("2")
	colorYellow  = lipgloss.Color("3")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorCyan    = lipgloss.Color("6")
	colorRed     = lipgloss.Color("1")
)

// IsColorEnabled returns true if ANSI color codes should be emitted to w.
// It checks that w is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return writerIsTTY(w)
}

// Theme owns the lipgloss renderer used by every Render* function.
type Theme struct {
	r       *lipgloss.Renderer
	colored bool
}

// NewTheme builds a Theme for output written to w.
func NewTheme(w io.Writer, mode ColorMode) *Theme {
	colored := false
	switch mode {
	case ColorAlways:
		colored = true
	case ColorAuto:
		colored = IsColorEnabled(w)
	}

	r := lipgloss.NewRenderer(w)
	if colored {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Theme{r: r, colored: colored}
}

// Colored reports whether the theme emits ANSI sequences.
func (t *Theme) Colored() bool {
	return t.colored
}

func (t *Theme) style() lipgloss.Style {
	return t.r.NewStyle()
}

func (t *Theme) fg(c lipgloss.Color) lipgloss.Style {
	return t.r.NewStyle().Foreground(c)
}

func (t *Theme) bold(c lipgloss.Color) lipgloss.Style {
	return t.fg(c).Bold(true)
}

func (t *Theme) dim() lipgloss.Style {
	return t.r.NewStyle().Faint(true)
}
