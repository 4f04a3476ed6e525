package v1

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/byxorna/shelf/pkg/text"
	"github.com/go-playground/validator"
)

// AllowedExtensions is the fixed set of document types a theme accepts.
var AllowedExtensions = []string{".pdf", ".docx"}

// Theme is a directory directly under the storage root. Name is the
// normalized identifier and doubles as the display name.
type Theme struct {
	Name string `yaml:"name" validate:"required,themename"`
	Path string `yaml:"path" validate:"required"`
}

// Document is a regular file directly inside a theme directory. Filename is
// kept exactly as imported.
type Document struct {
	Theme    string    `yaml:"theme" validate:"required"`
	Filename string    `yaml:"filename" validate:"required"`
	Ext      string    `yaml:"ext" validate:"oneof=.pdf .docx"`
	Size     int64     `yaml:"size" validate:"min=0"`
	ModTime  time.Time `yaml:"modified"`
	Path     string    `yaml:"path" validate:"required"`
}

type SyncStatus string

const (
	StatusUninitialized SyncStatus = "uninitialized"
	StatusOK            SyncStatus = "ok"
	StatusSynchronizing SyncStatus = "synchronizing"
	StatusError         SyncStatus = "error"
)

// IsAllowedExtension reports whether the extension of filename is in
// AllowedExtensions, ignoring case.
func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// Allowed reports whether the document has an importable extension.
func (d Document) Allowed() bool {
	return IsAllowedExtension(d.Filename)
}

// Validate checks a theme about to be created or renamed. Directories made by
// hand are listed without it.
func (t *Theme) Validate() error {
	return newValidator().Struct(*t)
}

// Validate checks an imported document; listings may hold other files that
// were dropped into a theme by hand.
func (d *Document) Validate() error {
	return newValidator().Struct(*d)
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("themename", func(fl validator.FieldLevel) bool {
		return text.IsNormalizedName(fl.Field().String())
	})
	return validate
}

type ByNameThemeList []Theme

func (p ByNameThemeList) Len() int {
	return len(p)
}

func (p ByNameThemeList) Less(i, j int) bool {
	return p[i].Name < p[j].Name
}

func (p ByNameThemeList) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

type ByFilenameDocumentList []Document

func (p ByFilenameDocumentList) Len() int {
	return len(p)
}

func (p ByFilenameDocumentList) Less(i, j int) bool {
	return p[i].Filename < p[j].Filename
}

func (p ByFilenameDocumentList) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}
