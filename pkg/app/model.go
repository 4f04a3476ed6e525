package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/byxorna/shelf/pkg/picker"
	"github.com/byxorna/shelf/pkg/session"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/types/v1"
	"github.com/byxorna/shelf/pkg/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

type mode int

const (
	browsing mode = iota
	naming
	confirming
	picking
	helping
)

type focus int

const (
	themesFocus focus = iota
	documentsFocus
)

type inputPurpose int

const (
	creatingTheme inputPurpose = iota
	renamingTheme
)

// confirmation is a pending destructive action waiting on y/N.
type confirmation struct {
	prompt string
	action func(*Application) tea.Cmd
}

// rounded border, one cell on each side
const paneFrame = 2

// refreshMsg is sent when the store changed on disk behind our back.
type refreshMsg struct{}

type Application struct {
	UseAltScreen bool

	keys     applicationKeyMap
	log      zerolog.Logger
	launcher session.Launcher
	changes  <-chan struct{}

	sess      session.Session
	focus     focus
	themes    pane
	documents pane

	mode     mode
	purpose  inputPurpose
	input    textinput.Model
	confirm  *confirmation
	picker   *picker.Model
	pickFrom string
	help     string

	status      statusMessage
	statusTimer *statusTimer

	width, height int
	quitting      bool
}

func (m Application) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.UseAltScreen {
		cmds = append(cmds, tea.EnterAltScreen)
	}
	cmds = append(cmds, waitForChange(m.changes))
	return tea.Batch(cmds...)
}

// waitForChange blocks until the store reports a change. A nil or closed
// channel ends the watch.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return refreshMsg{}
	}
}

func (m Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case refreshMsg:
		m.log.Debug().Msg("store changed on disk, reloading")
		m.reload()
		return m, waitForChange(m.changes)

	case statusMessageTimeoutMsg:
		m.expireStatus(msg)
		return m, nil

	case picker.ChosenMsg:
		m.mode = browsing
		m.pickFrom = filepath.Dir(msg.Path)
		cmd := m.addDocument(msg.Path)
		return m, cmd

	case picker.CancelledMsg:
		m.mode = browsing
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case naming:
			return m.updateNaming(msg)
		case confirming:
			return m.updateConfirming(msg)
		case helping:
			m.mode = browsing
			return m, nil
		case picking:
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
		default:
			return m.updateBrowsing(msg)
		}
	}

	return m.forward(msg)
}

// forward hands msg to whichever component currently owns the screen.
func (m Application) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.mode {
	case picking:
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	case naming:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	if _, isKey := msg.(tea.KeyMsg); isKey {
		if m.mode == browsing {
			p := m.activePane()
			p.list, cmd = p.list.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// list housekeeping (status message expiry, spinners) goes to both
	m.themes.list, cmd = m.themes.list.Update(msg)
	cmds = append(cmds, cmd)
	m.documents.list, cmd = m.documents.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Application) activePane() *pane {
	if m.focus == documentsFocus {
		return &m.documents
	}
	return &m.themes
}

func (m Application) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.activePane()
	// Don't match any of the keys below if we're actively filtering.
	if active.filtering() {
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help = renderHelp(m.width)
		m.mode = helping
		return m, nil

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == themesFocus {
			if _, ok := m.sess.Selected(); ok {
				m.focus = documentsFocus
			}
		} else {
			m.focus = themesFocus
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if active.list.FilterState() != list.Unfiltered {
			break
		}
		m.focus = themesFocus
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == themesFocus {
		cmd = m.themeKey(msg)
	} else {
		cmd = m.documentKey(msg)
	}
	if cmd != nil || m.mode != browsing {
		return m, cmd
	}
	return m.forward(msg)
}

// themeKey runs the action bound to msg in the theme pane; nil when msg is
// not one of ours.
func (m *Application) themeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.choose):
		theme, ok := m.highlightedTheme()
		if !ok {
			return nil
		}
		if cmd := m.selectTheme(theme.Name); cmd != nil {
			return cmd
		}
		m.focus = documentsFocus
		return m.setStatus(statusMessage{subtleStatusMessage, "Opened " + theme.Name})

	case key.Matches(msg, m.keys.create):
		return m.startNaming(creatingTheme, "")

	case key.Matches(msg, m.keys.rename):
		theme, ok := m.highlightedTheme()
		if !ok {
			return nil
		}
		if cmd := m.selectTheme(theme.Name); cmd != nil {
			return cmd
		}
		return m.startNaming(renamingTheme, theme.Name)

	case key.Matches(msg, m.keys.remove):
		theme, ok := m.highlightedTheme()
		if !ok {
			return nil
		}
		if cmd := m.selectTheme(theme.Name); cmd != nil {
			return cmd
		}
		sel, _ := m.sess.Selected()
		m.askConfirmation(
			fmt.Sprintf("%s Delete theme %s and its %d document(s)?", text.EmojiWastebasket, theme.Name, len(sel.Documents)),
			(*Application).deleteSelectedTheme)
		return nil

	case key.Matches(msg, m.keys.add):
		theme, ok := m.highlightedTheme()
		if !ok {
			return nil
		}
		if cmd := m.selectTheme(theme.Name); cmd != nil {
			return cmd
		}
		return m.startPicking()
	}
	return nil
}

func (m *Application) documentKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.choose):
		doc, ok := m.highlightedDocument()
		if !ok {
			return nil
		}
		return m.openDocument(doc.Filename)

	case key.Matches(msg, m.keys.add):
		return m.startPicking()

	case key.Matches(msg, m.keys.remove):
		doc, ok := m.highlightedDocument()
		if !ok {
			return nil
		}
		filename := doc.Filename
		m.askConfirmation(
			fmt.Sprintf("%s Delete %s?", text.EmojiWastebasket, filename),
			func(a *Application) tea.Cmd { return a.deleteDocument(filename) })
		return nil
	}
	return nil
}

func (m *Application) highlightedTheme() (v1.Theme, bool) {
	it, ok := m.themes.list.SelectedItem().(themeItem)
	return it.Theme, ok
}

func (m *Application) highlightedDocument() (v1.Document, bool) {
	it, ok := m.documents.list.SelectedItem().(documentItem)
	return it.Document, ok
}

func (m *Application) startNaming(purpose inputPurpose, initial string) tea.Cmd {
	m.mode = naming
	m.purpose = purpose
	if purpose == creatingTheme {
		m.input.Prompt = ui.PromptStyle.Render("New theme: ")
	} else {
		m.input.Prompt = ui.PromptStyle.Render("Rename to: ")
	}
	m.input.Reset()
	m.input.SetValue(initial)
	m.input.Focus()
	return textinput.Blink
}

func (m *Application) stopNaming() {
	m.mode = browsing
	m.input.Blur()
	m.input.Reset()
}

func (m Application) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.stopNaming()
		cmd := m.setStatus(statusMessage{subtleStatusMessage, "Cancelled"})
		return m, cmd

	case key.Matches(msg, m.keys.submit):
		value := m.input.Value()
		purpose := m.purpose
		m.stopNaming()
		var cmd tea.Cmd
		if purpose == creatingTheme {
			cmd = m.createTheme(value)
		} else {
			cmd = m.renameSelectedTheme(value)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Application) askConfirmation(prompt string, action func(*Application) tea.Cmd) {
	m.mode = confirming
	m.confirm = &confirmation{prompt: prompt, action: action}
}

// updateConfirming runs the pending action on y; any other key declines.
func (m Application) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	m.confirm = nil
	m.mode = browsing
	if c == nil {
		return m, nil
	}

	var cmd tea.Cmd
	if key.Matches(msg, m.keys.confirm) {
		cmd = c.action(&m)
	} else {
		cmd = m.setStatus(statusMessage{subtleStatusMessage, "Cancelled"})
	}
	return m, cmd
}

func (m *Application) startPicking() tea.Cmd {
	p, err := picker.New(m.pickFrom)
	if err != nil {
		// the last directory may be gone, start over from home
		p, err = picker.New("~")
	}
	if err != nil {
		return m.setStatus(statusFromError(err))
	}
	p.SetSize(m.width, m.height-lipgloss.Height(m.footerView()))
	m.picker = p
	m.mode = picking
	return nil
}

// selectTheme makes name the session's selection. It returns a status
// command only when that failed.
func (m *Application) selectTheme(name string) tea.Cmd {
	sess, err := m.sess.Select(name)
	if err != nil {
		m.reload()
		return m.fail("select theme", err)
	}
	m.sess = sess
	m.loadDocuments()
	m.reloadThemes()
	return nil
}

func (m *Application) createTheme(raw string) tea.Cmd {
	sess, theme, err := m.sess.CreateTheme(raw)
	if err != nil {
		return m.fail("create theme", err)
	}
	m.sess = sess
	m.reloadThemes()
	m.themes.selectIndexOf(theme.Name)
	return m.setStatus(statusMessage{normalStatusMessage, fmt.Sprintf("%s Created theme %s", text.EmojiCheckmark, theme.Name)})
}

func (m *Application) renameSelectedTheme(raw string) tea.Cmd {
	before, _ := m.sess.Selected()
	sess, err := m.sess.RenameSelected(raw)
	if err != nil {
		return m.fail("rename theme", err)
	}
	m.sess = sess
	after, _ := m.sess.Selected()
	m.reloadThemes()
	m.themes.selectIndexOf(after.Theme.Name)
	m.loadDocuments()
	return m.setStatus(statusMessage{normalStatusMessage,
		fmt.Sprintf("%s Renamed %s to %s", text.EmojiCheckmark, before.Theme.Name, after.Theme.Name)})
}

func (m *Application) deleteSelectedTheme() tea.Cmd {
	sel, _ := m.sess.Selected()
	sess, err := m.sess.DeleteSelected()
	m.sess = sess
	m.focus = themesFocus
	m.reloadThemes()
	m.loadDocuments()
	if err != nil {
		return m.fail("delete theme", err)
	}
	return m.setStatus(statusMessage{normalStatusMessage, fmt.Sprintf("%s Deleted theme %s", text.EmojiWastebasket, sel.Theme.Name)})
}

func (m *Application) addDocument(path string) tea.Cmd {
	sess, doc, err := m.sess.AddDocument(path)
	m.sess = sess
	m.loadDocuments()
	if err != nil {
		return m.fail("add document", err)
	}
	m.focus = documentsFocus
	return m.setStatus(statusMessage{normalStatusMessage, fmt.Sprintf("%s Added %s", text.EmojiCheckmark, doc.Filename)})
}

func (m *Application) deleteDocument(filename string) tea.Cmd {
	sess, err := m.sess.DeleteDocument(filename)
	m.sess = sess
	m.loadDocuments()
	if err != nil {
		return m.fail("delete document", err)
	}
	return m.setStatus(statusMessage{normalStatusMessage, fmt.Sprintf("%s Deleted %s", text.EmojiWastebasket, filename)})
}

func (m *Application) openDocument(filename string) tea.Cmd {
	sess, err := m.sess.OpenDocument(filename, m.launcher)
	m.sess = sess
	if err != nil {
		m.loadDocuments()
		return m.fail("open document", err)
	}
	return m.setStatus(statusMessage{subtleStatusMessage, "Opening " + filename})
}

func (m *Application) fail(op string, err error) tea.Cmd {
	m.log.Warn().Err(err).Str("op", op).Msg("operation failed")
	return m.setStatus(statusFromError(err))
}

// reload rereads everything from the store, keeping the cursor on the
// same theme when it still exists.
func (m *Application) reload() {
	sess, err := m.sess.Refresh()
	m.sess = sess
	if err != nil {
		m.log.Debug().Err(err).Msg("selection dropped on refresh")
	}
	if _, ok := m.sess.Selected(); !ok {
		m.focus = themesFocus
	}
	m.reloadThemes()
	m.loadDocuments()
}

func (m *Application) reloadThemes() {
	highlighted, hadHighlight := m.highlightedTheme()

	themes, err := m.sess.Themes()
	if err != nil {
		m.status = statusFromError(err)
		return
	}
	sel, _ := m.sess.Selected()
	items := make([]list.Item, len(themes))
	for i, t := range themes {
		items[i] = themeItem{Theme: t, selected: t.Name == sel.Theme.Name}
	}
	m.themes.setItems(items)
	if hadHighlight {
		m.themes.selectIndexOf(highlighted.Name)
	}
}

func (m *Application) loadDocuments() {
	docs, err := m.sess.Documents()
	if err != nil {
		m.documents.setItems([]list.Item{})
		m.documents.list.Title = "no theme selected"
		return
	}
	items := make([]list.Item, len(docs))
	for i, d := range docs {
		items[i] = documentItem{d}
	}
	m.documents.setItems(items)
	sel, _ := m.sess.Selected()
	m.documents.list.Title = fmt.Sprintf("%s · %s", sel.Theme.Name, m.documents.TabTitle())
}

func (m *Application) setSize(width, height int) {
	m.width, m.height = width, height

	topGap, rightGap, bottomGap, leftGap := ui.AppStyle.GetPadding()
	frameW, frameH := paneFrame, paneFrame

	innerW := width - leftGap - rightGap
	paneH := height - topGap - bottomGap - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView()) - frameH
	if paneH < 1 {
		paneH = 1
	}
	themesW := innerW/3 - frameW
	docsW := innerW - innerW/3 - frameW
	if themesW < 1 {
		themesW = 1
	}
	if docsW < 1 {
		docsW = 1
	}

	m.themes.list.SetSize(themesW, paneH)
	m.documents.list.SetSize(docsW, paneH)
	m.input.Width = innerW - lipgloss.Width(m.input.Prompt) - 1
	if m.picker != nil {
		m.picker.SetSize(innerW, height-topGap-bottomGap-lipgloss.Height(m.footerView()))
	}
}

func (m Application) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case helping:
		return ui.AppStyle.Render(m.help + "\n" + ui.DimNormalFg("press any key to go back"))
	case picking:
		return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.picker.View(), m.footerView()))
	}

	themesStyle, docsStyle := ui.FocusedPaneStyle, ui.PaneStyle
	if m.focus == documentsFocus {
		themesStyle, docsStyle = ui.PaneStyle, ui.FocusedPaneStyle
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		themesStyle.Render(m.themes.list.View()),
		docsStyle.Render(m.documents.list.View()))

	return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView()))
}

func (m Application) headerView() string {
	backend := m.sess.Backend()
	return fmt.Sprintf("%s %s %s",
		ui.FuchsiaFg("shelf"),
		ui.GrayFg(backend.StoragePath()),
		ui.DimNormalFg(string(backend.Status())))
}

func (m Application) footerView() string {
	switch {
	case m.mode == naming:
		return m.input.View()
	case m.mode == confirming && m.confirm != nil:
		return ui.YellowFg(m.confirm.prompt) + " " + ui.DimNormalFg("(y/N)")
	case m.status.message != "":
		return m.status.String()
	default:
		return ui.DimNormalFg(strings.Join([]string{"n new", "e rename", "a add", "x delete", "tab switch", "? help", "q quit"}, " • "))
	}
}
