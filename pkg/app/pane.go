package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// pane is one of the two lists on screen.
type pane struct {
	noun string
	list list.Model
}

func newPane(noun string, delegate list.ItemDelegate) pane {
	l := list.NewModel([]list.Item{}, delegate, 0, 0)
	l.Title = noun + "s"
	return pane{noun: noun, list: l}
}

// TabTitle is the pane heading, pluralized on the item count.
func (p pane) TabTitle() string {
	n := len(p.list.Items())
	t := p.noun
	if n != 1 {
		t = t + "s"
	}
	return fmt.Sprintf("%d %s", n, t)
}

func (p pane) filtering() bool {
	return p.list.FilterState() == list.Filtering
}

func (p *pane) setItems(items []list.Item) tea.Cmd {
	cmd := p.list.SetItems(items)
	p.list.Title = p.TabTitle()
	return cmd
}

// selectIndexOf moves the cursor to the first item whose FilterValue is
// value, reporting whether it was found.
func (p *pane) selectIndexOf(value string) bool {
	for i, it := range p.list.Items() {
		if it.FilterValue() == value {
			p.list.Select(i)
			return true
		}
	}
	return false
}
