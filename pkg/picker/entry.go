package picker

import (
	"fmt"
	"os"

	"github.com/byxorna/shelf/pkg/text"
)

const parentEntry = ".."

type item struct {
	entryName string
	info      os.FileInfo
}

func (i item) isDir() bool {
	return i.entryName == parentEntry || (i.info != nil && i.info.IsDir())
}

func (i item) Title() string {
	if i.isDir() {
		return fmt.Sprintf("%s %s", text.EmojiTheme, i.entryName)
	}
	return fmt.Sprintf("%s %s", text.DocumentIcon(i.entryName), i.entryName)
}

func (i item) Description() string {
	if i.info == nil {
		return ""
	}
	if i.isDir() {
		return i.info.Mode().Perm().String()
	}
	return fmt.Sprintf("%s · %s", text.Bytes(i.info.Size()), text.RelativeTime(i.info.ModTime()))
}

func (i item) FilterValue() string { return i.entryName }
