package app

import (
	"fmt"

	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/types/v1"
)

const themePathWidth = 40

type themeItem struct {
	v1.Theme
	selected bool
}

func (i themeItem) Title() string {
	icon := text.EmojiTheme
	if i.selected {
		icon = text.EmojiThemeOpen
	}
	return fmt.Sprintf("%s %s", icon, text.ColoredName(i.Name))
}
func (i themeItem) Description() string {
	return text.TruncateWithTail(i.Path, themePathWidth, text.Ellipsis)
}
func (i themeItem) FilterValue() string { return i.Name }

type documentItem struct {
	v1.Document
}

func (i documentItem) Title() string {
	return fmt.Sprintf("%s %s", text.DocumentIcon(i.Filename), i.Filename)
}
func (i documentItem) Description() string {
	return fmt.Sprintf("%s · %s", text.Bytes(i.Size), text.RelativeTime(i.ModTime))
}
func (i documentItem) FilterValue() string {
	// filter on the folded name so "peticao" finds "Petição"
	if folded, err := text.Normalize(i.Filename); err == nil {
		return folded
	}
	return i.Filename
}
