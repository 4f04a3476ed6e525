package app

import (
	"github.com/byxorna/shelf/pkg/config"
	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/session"
	"github.com/byxorna/shelf/pkg/ui"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const themeNameCharLimit = 128

// New builds the terminal application over store. changes, when not nil,
// triggers a reload each time it fires.
func New(cfg *config.Config, store db.Backend, launcher session.Launcher, changes <-chan struct{}, log zerolog.Logger) (*Application, error) {
	keys := DefaultKeyMap()

	ti := textinput.NewModel()
	ti.CursorStyle = lipgloss.NewStyle().Foreground(ui.Fuchsia)
	ti.CharLimit = themeNameCharLimit
	ti.Prompt = ui.PromptStyle.Render("New theme: ")

	m := Application{
		UseAltScreen: cfg.AltScreen,

		keys:     keys,
		log:      log,
		launcher: launcher,
		changes:  changes,

		sess:      session.New(store),
		themes:    newPane("theme", newThemeDelegate(keys)),
		documents: newPane("document", newDocumentDelegate(keys)),
		input:     ti,
		pickFrom:  "~",
	}

	if _, err := m.sess.Themes(); err != nil {
		return nil, err
	}
	m.reload()

	return &m, nil
}
