package app

import (
	"github.com/byxorna/shelf/pkg/ui"
)

const helpMarkdown = `# shelf

Documents are filed into **themes**, one folder per theme. Theme names are
normalized: accents are dropped, letters lowercased, spaces become ` + "`_`" + `
and anything else is removed, so *Família Silva* is stored as ` + "`familia_silva`" + `.

## Themes

| key | action |
|-----|--------|
| enter | open the theme |
| n | new theme |
| e | rename theme |
| x | delete theme and every document in it |
| a | add a document to the theme |

## Documents

| key | action |
|-----|--------|
| enter | open with the default application |
| a | add a PDF or DOCX file |
| x | delete the document |
| esc | back to themes |

## Everywhere

| key | action |
|-----|--------|
| tab | switch between themes and documents |
| / | filter the focused list |
| ? | this help |
| q | quit |

Deleting asks for confirmation with **y/N**. Nothing is kept after a delete.
`

// renderHelp renders the help page, falling back to the raw markdown.
func renderHelp(width int) string {
	out, err := ui.RenderMarkdown(helpMarkdown, width-4)
	if err != nil {
		return helpMarkdown
	}
	return out
}
