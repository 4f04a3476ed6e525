// Package session holds what the user currently has selected and routes
// every theme and document operation through it. A Session is a value:
// operations return the next Session instead of mutating shared state, so a
// caller never observes a selection that points at a renamed or deleted theme.
package session

import (
	"errors"
	"fmt"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/types/v1"
)

// Launcher hands a file to whatever opens it by default.
type Launcher interface {
	Open(path string) error
}

// Selection is the active theme plus its listing as of the last refresh.
type Selection struct {
	Theme     v1.Theme
	Documents []v1.Document
}

type Session struct {
	backend   db.Backend
	selection *Selection
}

func New(backend db.Backend) Session {
	return Session{backend: backend}
}

func (s Session) Backend() db.Backend { return s.backend }

// Selected returns the active selection, or false when nothing is selected.
func (s Session) Selected() (Selection, bool) {
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// Documents returns the cached listing of the selected theme.
func (s Session) Documents() ([]v1.Document, error) {
	if s.selection == nil {
		return nil, db.ErrNoThemeSelected
	}
	return s.selection.Documents, nil
}

func (s Session) Themes() ([]v1.Theme, error) {
	return s.backend.Themes()
}

// Clear drops the selection.
func (s Session) Clear() Session {
	s.selection = nil
	return s
}

// Select makes the theme named rawName active and loads its listing.
func (s Session) Select(rawName string) (Session, error) {
	theme, err := s.backend.Theme(rawName)
	if err != nil {
		return s, err
	}
	return s.selectTheme(theme)
}

func (s Session) selectTheme(theme v1.Theme) (Session, error) {
	docs, err := s.backend.Documents(theme)
	if err != nil {
		return s, err
	}
	s.selection = &Selection{Theme: theme, Documents: docs}
	return s, nil
}

// Refresh rereads the selected theme's listing. A selected theme that has
// vanished from disk is deselected.
func (s Session) Refresh() (Session, error) {
	if s.selection == nil {
		return s, nil
	}
	next, err := s.selectTheme(s.selection.Theme)
	if errors.Is(err, db.ErrThemeNotFound) {
		return s.Clear(), err
	}
	return next, err
}

// CreateTheme adds a theme. The selection is left alone.
func (s Session) CreateTheme(rawName string) (Session, v1.Theme, error) {
	theme, err := s.backend.CreateTheme(rawName)
	return s, theme, err
}

// RenameSelected renames the selected theme; the returned session already
// points at the new name.
func (s Session) RenameSelected(rawName string) (Session, error) {
	if s.selection == nil {
		return s, db.ErrNoThemeSelected
	}
	renamed, err := s.backend.RenameTheme(s.selection.Theme, rawName)
	if err != nil {
		return s, err
	}
	next, err := s.selectTheme(renamed)
	if err != nil {
		// the old path is gone either way
		next.selection = &Selection{Theme: renamed}
	}
	return next, err
}

// DeleteSelected removes the selected theme and everything in it. Ask the
// user first; there is no undo.
func (s Session) DeleteSelected() (Session, error) {
	if s.selection == nil {
		return s, db.ErrNoThemeSelected
	}
	if err := s.backend.DeleteTheme(s.selection.Theme); err != nil {
		if errors.Is(err, db.ErrThemeNotFound) {
			return s.Clear(), err
		}
		return s, err
	}
	return s.Clear(), nil
}

// AddDocument copies sourcePath into the selected theme.
func (s Session) AddDocument(sourcePath string) (Session, v1.Document, error) {
	if s.selection == nil {
		return s, v1.Document{}, db.ErrNoThemeSelected
	}
	doc, err := s.backend.AddDocument(s.selection.Theme, sourcePath)
	if err != nil {
		return s, v1.Document{}, err
	}
	next, err := s.Refresh()
	return next, doc, err
}

// DeleteDocument removes filename from the selected theme. The listing is
// refreshed either way; a file that was already gone comes back as
// db.ErrDocumentNotFound.
func (s Session) DeleteDocument(filename string) (Session, error) {
	if s.selection == nil {
		return s, db.ErrNoThemeSelected
	}
	err := s.backend.DeleteDocument(s.selection.Theme, filename)
	next, rerr := s.Refresh()
	if err != nil {
		return next, err
	}
	return next, rerr
}

// OpenDocument launches filename with the default application. A missing
// file refreshes the listing and returns db.ErrDocumentNotFound.
func (s Session) OpenDocument(filename string, launcher Launcher) (Session, error) {
	if s.selection == nil {
		return s, db.ErrNoThemeSelected
	}
	p, err := s.backend.DocumentPath(s.selection.Theme, filename)
	if err != nil {
		next, _ := s.Refresh()
		return next, err
	}
	if err := launcher.Open(p); err != nil {
		return s, fmt.Errorf("unable to open %s: %w", filename, err)
	}
	return s, nil
}
