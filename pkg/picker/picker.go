// Package picker lets the user choose a document to add, either by browsing
// directories in the terminal or by scanning a tree for candidates.
package picker

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/byxorna/shelf/pkg/types/v1"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
)

var (
	SelectKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	CancelKey = key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "cancel"))
)

// ChosenMsg carries the file the user picked.
type ChosenMsg struct{ Path string }

// CancelledMsg is sent when the user backs out without choosing.
type CancelledMsg struct{}

// Model browses directories showing only sub-directories and files whose
// extension may be added to a theme.
type Model struct {
	directory     string
	err           error
	width, height int

	list list.Model
}

func New(dir string) (*Model, error) {
	m := Model{directory: "/"}
	err := m.cd(dir)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Model) Directory() string { return m.directory }
func (m *Model) Err() error        { return m.err }

func (m *Model) Init() tea.Cmd { return nil }
func (m *Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.list.SetSize(width, height)
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't match any of the keys below if we're actively filtering.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, CancelKey):
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, func() tea.Msg { return CancelledMsg{} }

		case key.Matches(msg, SelectKey):
			selected, ok := m.list.SelectedItem().(item)
			if !ok {
				return m, nil
			}
			if selected.entryName == parentEntry {
				m.err = m.cd(filepath.Dir(m.directory))
				return m, m.list.NewStatusMessage("Up")
			}

			p := filepath.Join(m.directory, selected.entryName)
			if selected.isDir() {
				m.err = m.cd(p)
				return m, nil
			}
			return m, func() tea.Msg { return ChosenMsg{Path: p} }
		}
	}
	l, cmd := m.list.Update(msg)
	m.list = l
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// Entries lists dir the way the picker shows it: hidden entries skipped,
// directories first, then documents with an allowed extension.
func Entries(dir string) ([]os.FileInfo, error) {
	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	dirs := []os.FileInfo{}
	docs := []os.FileInfo{}
	for _, fi := range infos {
		if strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		switch {
		case fi.IsDir():
			dirs = append(dirs, fi)
		case fi.Mode().IsRegular() && v1.IsAllowedExtension(fi.Name()):
			docs = append(docs, fi)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name() < docs[j].Name() })
	return append(dirs, docs...), nil
}

func (m *Model) cd(path string) error {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	absDir, err := filepath.Abs(expandedPath)
	if err != nil {
		return err
	}

	finfo, err := os.Stat(absDir)
	if err != nil {
		return err
	}
	if !finfo.IsDir() {
		return fmt.Errorf("%s must be a directory", absDir)
	}

	entries, err := Entries(absDir)
	if err != nil {
		return err
	}
	m.directory = absDir

	items := []list.Item{}
	if absDir != filepath.Dir(absDir) {
		items = append(items, item{entryName: parentEntry})
	}
	for _, fi := range entries {
		items = append(items, item{entryName: fi.Name(), info: fi})
	}

	m.list = list.NewModel(items, list.NewDefaultDelegate(), m.width, m.height)
	m.list.Title = m.directory

	return nil
}
