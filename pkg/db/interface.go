package db

import (
	"errors"
	"fmt"

	"github.com/byxorna/shelf/pkg/types/v1"
)

var (
	ErrEmptyName           = fmt.Errorf("theme name is empty")
	ErrInvalidName         = fmt.Errorf("theme name has no usable characters")
	ErrDisallowedExtension = fmt.Errorf("file type not allowed")
	ErrInvalidFilename     = fmt.Errorf("invalid document filename")
	ErrNotAFile            = fmt.Errorf("not a regular file")

	ErrThemeExists    = fmt.Errorf("theme already exists")
	ErrDocumentExists = fmt.Errorf("document already exists in theme")

	ErrThemeNotFound    = fmt.Errorf("no theme found")
	ErrDocumentNotFound = fmt.Errorf("no document found")
	ErrNoThemeSelected  = fmt.Errorf("no theme selected")
)

// Kind groups errors by how the user should be told about them.
type Kind int

const (
	// KindInternal is anything the filesystem threw at us that we did not
	// anticipate.
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindMissing
)

func (k Kind) String() string {
	return map[Kind]string{
		KindInternal:   "internal",
		KindValidation: "validation",
		KindConflict:   "conflict",
		KindMissing:    "missing",
	}[k]
}

var kinds = map[Kind][]error{
	KindValidation: {ErrEmptyName, ErrInvalidName, ErrDisallowedExtension, ErrInvalidFilename, ErrNotAFile},
	KindConflict:   {ErrThemeExists, ErrDocumentExists},
	KindMissing:    {ErrThemeNotFound, ErrDocumentNotFound, ErrNoThemeSelected},
}

// KindOf classifies err. nil is KindInternal; check for nil first.
func KindOf(err error) Kind {
	for k, errs := range kinds {
		for _, e := range errs {
			if errors.Is(err, e) {
				return k
			}
		}
	}
	return KindInternal
}

// Backend is the interface any storage provider satisfies to hold themes and
// their documents. fs.Store implements this.
type Backend interface {
	Themes() ([]v1.Theme, error)
	Theme(rawName string) (v1.Theme, error)
	CreateTheme(rawName string) (v1.Theme, error)
	RenameTheme(current v1.Theme, rawName string) (v1.Theme, error)
	DeleteTheme(theme v1.Theme) error

	Documents(theme v1.Theme) ([]v1.Document, error)
	AddDocument(theme v1.Theme, sourcePath string) (v1.Document, error)
	DeleteDocument(theme v1.Theme, filename string) error
	DocumentPath(theme v1.Theme, filename string) (string, error)

	StoragePath() string
	Status() v1.SyncStatus
}
