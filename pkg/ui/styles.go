package ui

import (
	lib "github.com/charmbracelet/charm/ui/common"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

type StyleFunc func(string) string

var (
	NormalFg    = NewFgStyle(lib.NewColorPair("#dddddd", "#1a1a1a"))
	DimNormalFg = NewFgStyle(lib.NewColorPair("#777777", "#A49FA5"))

	GrayFg = NewFgStyle(lib.NewColorPair("#626262", "#909090"))

	GreenFg    = NewFgStyle(lib.NewColorPair("#04B575", "#04B575"))
	DimGreenFg = NewFgStyle(lib.NewColorPair("#0B5137", "#72D2B0"))

	FuchsiaFg     = NewFgStyle(lib.Fuschia)
	DullFuchsiaFg = NewFgStyle(lib.NewColorPair("#AD58B4", "#F793FF"))
	IndigoFg      = NewFgStyle(lib.Indigo)

	YellowFg = NewFgStyle(lib.YellowGreen) // renders light green on light backgrounds
	RedFg    = NewFgStyle(lib.Red)

	// Match highlights filter hits inside names.
	Match = te.Style{}.Underline()

	Fuchsia = lipgloss.Color("205")

	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	// panes: the focused one gets the accent border
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#C2B8C2", Dark: "#4D4D4D"})
	FocusedPaneStyle = PaneStyle.Copy().
				BorderForeground(lipgloss.AdaptiveColor{Light: "#F793FF", Dark: "#AD58B4"})

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#F1A8FF", Dark: "#99519E"}).
			Bold(true)
)

// Returns a termenv style with foreground and background options.
func NewStyle(fg, bg lib.ColorPair, bold bool) StyleFunc {
	s := te.Style{}.Foreground(fg.Color()).Background(bg.Color())
	if bold {
		s = s.Bold()
	}
	return s.Styled
}

// Returns a new termenv style with foreground options only.
func NewFgStyle(c lib.ColorPair) StyleFunc {
	return te.Style{}.Foreground(c.Color()).Styled
}

// RenderMarkdown renders md for the terminal, wrapped at width.
func RenderMarkdown(md string, width int) (string, error) {
	if width < 0 {
		width = 0
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithEmoji(),
		glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
