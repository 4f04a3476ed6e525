// Package fs stores themes as directories under a single root, with each
// theme's documents as regular files directly inside it. There is no index:
// every listing is read from disk.
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/types/v1"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

var _ db.Backend = &Store{}

type Store struct {
	Directory string `yaml:"directory" validate:"required,dir"`

	status v1.SyncStatus
	log    zerolog.Logger
}

// NewStore opens the theme root at dir, creating it when createDirIfMissing
// is set.
func NewStore(dir string, createDirIfMissing bool, log zerolog.Logger) (*Store, error) {
	expandedPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	expandedPath, err = filepath.Abs(expandedPath)
	if err != nil {
		return nil, err
	}

	s := Store{
		Directory: expandedPath,
		status:    v1.StatusUninitialized,
		log:       log.With().Str("component", "store").Logger(),
	}

	finfo, err := os.Stat(expandedPath)
	if (err != nil || !finfo.IsDir()) && createDirIfMissing {
		if err := os.MkdirAll(expandedPath, 0700); err != nil {
			return nil, fmt.Errorf("error creating %s: %w", expandedPath, err)
		}
		s.log.Info().Str("directory", expandedPath).Msg("created storage directory")
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("error validating storage provider: %w", err)
	}

	s.status = v1.StatusOK
	return &s, nil
}

func (x *Store) Validate() error {
	validate := validator.New()
	return validate.Struct(*x)
}

func (x *Store) StoragePath() string {
	return x.Directory
}

func (x *Store) Status() v1.SyncStatus {
	return x.status
}

func (x *Store) themeAt(name string) v1.Theme {
	return v1.Theme{Name: name, Path: filepath.Join(x.Directory, name)}
}

func isThemeDir(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}

// normalize applies the theme naming rules, returning a validation error for
// input that can't name a theme.
func normalize(rawName string) (string, error) {
	if strings.TrimSpace(rawName) == "" {
		return "", db.ErrEmptyName
	}
	name := text.NormalizeName(rawName)
	if name == "" {
		return "", fmt.Errorf("%q: %w", rawName, db.ErrInvalidName)
	}
	return name, nil
}

// Themes returns every theme directory under the root, sorted by name.
func (x *Store) Themes() ([]v1.Theme, error) {
	entries, err := os.ReadDir(x.Directory)
	if err != nil {
		return nil, fmt.Errorf("unable to list %s: %w", x.Directory, err)
	}

	themes := []v1.Theme{}
	for _, e := range entries {
		if !e.IsDir() || !isThemeDir(e.Name()) {
			continue
		}
		themes = append(themes, x.themeAt(e.Name()))
	}
	sort.Sort(v1.ByNameThemeList(themes))
	return themes, nil
}

// Theme returns the theme directory named exactly rawName, or else resolves
// rawName through the naming rules, so "Família Silva" finds familia_silva.
// The exact match keeps folders made by hand reachable.
func (x *Store) Theme(rawName string) (v1.Theme, error) {
	if isThemeDir(rawName) && !text.IsNormalizedName(rawName) {
		// match the listing, not os.Stat, which folds case on some filesystems
		themes, err := x.Themes()
		if err != nil {
			return v1.Theme{}, err
		}
		for _, t := range themes {
			if t.Name == rawName {
				return t, nil
			}
		}
	}

	name, err := normalize(rawName)
	if err != nil {
		return v1.Theme{}, err
	}

	t := x.themeAt(name)
	finfo, err := os.Stat(t.Path)
	if err != nil || !finfo.IsDir() {
		return v1.Theme{}, fmt.Errorf("%s: %w", name, db.ErrThemeNotFound)
	}
	return t, nil
}

// CreateTheme makes a new theme directory. A name that normalizes onto an
// existing theme is a conflict, never a no-op.
func (x *Store) CreateTheme(rawName string) (v1.Theme, error) {
	name, err := normalize(rawName)
	if err != nil {
		return v1.Theme{}, err
	}

	t := x.themeAt(name)
	if err := t.Validate(); err != nil {
		return v1.Theme{}, fmt.Errorf("invalid theme %q: %w", name, err)
	}
	if _, err := os.Lstat(t.Path); err == nil {
		return v1.Theme{}, fmt.Errorf("%s: %w", name, db.ErrThemeExists)
	}

	if err := os.Mkdir(t.Path, 0700); err != nil {
		if errors.Is(err, os.ErrExist) {
			return v1.Theme{}, fmt.Errorf("%s: %w", name, db.ErrThemeExists)
		}
		return v1.Theme{}, fmt.Errorf("unable to create theme %s: %w", name, err)
	}

	x.log.Info().Str("theme", name).Str("requested", rawName).Msg("created theme")
	return t, nil
}

// RenameTheme moves current to the theme named by rawName. Renaming onto the
// same identifier returns current untouched.
func (x *Store) RenameTheme(current v1.Theme, rawName string) (v1.Theme, error) {
	name, err := normalize(rawName)
	if err != nil {
		return v1.Theme{}, err
	}

	if finfo, err := os.Stat(current.Path); err != nil || !finfo.IsDir() {
		return v1.Theme{}, fmt.Errorf("%s: %w", current.Name, db.ErrThemeNotFound)
	}

	if name == current.Name {
		return current, nil
	}

	target := x.themeAt(name)
	if err := target.Validate(); err != nil {
		return v1.Theme{}, fmt.Errorf("invalid theme %q: %w", name, err)
	}
	// os.Rename replaces an empty target directory on unix, so the
	// existence check is what keeps this from clobbering another theme
	if _, err := os.Lstat(target.Path); err == nil {
		return v1.Theme{}, fmt.Errorf("%s: %w", name, db.ErrThemeExists)
	}

	if err := os.Rename(current.Path, target.Path); err != nil {
		return v1.Theme{}, fmt.Errorf("unable to rename theme %s to %s: %w", current.Name, name, err)
	}

	x.log.Info().Str("from", current.Name).Str("to", name).Msg("renamed theme")
	return target, nil
}

// DeleteTheme removes every entry in the theme and then the theme itself.
// A failure part way through leaves whatever was not yet removed.
func (x *Store) DeleteTheme(theme v1.Theme) error {
	entries, err := os.ReadDir(theme.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", theme.Name, db.ErrThemeNotFound)
		}
		return fmt.Errorf("unable to list theme %s: %w", theme.Name, err)
	}

	for _, e := range entries {
		p := filepath.Join(theme.Path, e.Name())
		if e.IsDir() {
			err = os.RemoveAll(p)
		} else {
			err = os.Remove(p)
		}
		if err != nil {
			return fmt.Errorf("unable to remove %s from theme %s: %w", e.Name(), theme.Name, err)
		}
	}

	if err := os.Remove(theme.Path); err != nil {
		return fmt.Errorf("unable to remove theme %s: %w", theme.Name, err)
	}

	x.log.Info().Str("theme", theme.Name).Int("documents", len(entries)).Msg("deleted theme")
	return nil
}

// Documents lists the regular, non-hidden files of a theme by filename.
func (x *Store) Documents(theme v1.Theme) ([]v1.Document, error) {
	entries, err := os.ReadDir(theme.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", theme.Name, db.ErrThemeNotFound)
		}
		return nil, fmt.Errorf("unable to list theme %s: %w", theme.Name, err)
	}

	docs := []v1.Document{}
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		finfo, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		docs = append(docs, documentFromInfo(theme, finfo))
	}
	sort.Sort(v1.ByFilenameDocumentList(docs))
	return docs, nil
}

func documentFromInfo(theme v1.Theme, finfo os.FileInfo) v1.Document {
	return v1.Document{
		Theme:    theme.Name,
		Filename: finfo.Name(),
		Ext:      strings.ToLower(filepath.Ext(finfo.Name())),
		Size:     finfo.Size(),
		ModTime:  finfo.ModTime(),
		Path:     filepath.Join(theme.Path, finfo.Name()),
	}
}

// AddDocument copies sourcePath into theme under its original base name.
// The extension is checked before anything is read, and an existing document
// of the same name is never overwritten.
func (x *Store) AddDocument(theme v1.Theme, sourcePath string) (v1.Document, error) {
	if !v1.IsAllowedExtension(sourcePath) {
		return v1.Document{}, fmt.Errorf("%s: %w", filepath.Base(sourcePath), db.ErrDisallowedExtension)
	}

	if finfo, err := os.Stat(theme.Path); err != nil || !finfo.IsDir() {
		return v1.Document{}, fmt.Errorf("%s: %w", theme.Name, db.ErrThemeNotFound)
	}

	src, err := homedir.Expand(sourcePath)
	if err != nil {
		return v1.Document{}, err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return v1.Document{}, fmt.Errorf("unable to read %s: %w", src, err)
	}
	if !srcInfo.Mode().IsRegular() {
		return v1.Document{}, fmt.Errorf("%s: %w", src, db.ErrNotAFile)
	}

	filename := srcInfo.Name()
	dest := filepath.Join(theme.Path, filename)
	doc := documentFromInfo(theme, srcInfo)
	if err := doc.Validate(); err != nil {
		return v1.Document{}, fmt.Errorf("unable to add %s to %q: %w", filename, theme.Name, err)
	}

	x.status = v1.StatusSynchronizing
	if err := copyNoClobber(src, dest, srcInfo); err != nil {
		x.status = v1.StatusOK
		if errors.Is(err, os.ErrExist) {
			return v1.Document{}, fmt.Errorf("%s in %s: %w", filename, theme.Name, db.ErrDocumentExists)
		}
		x.status = v1.StatusError
		x.log.Error().Err(err).Str("theme", theme.Name).Str("source", src).Msg("copy failed")
		return v1.Document{}, fmt.Errorf("unable to copy %s into %s: %w", filename, theme.Name, err)
	}
	x.status = v1.StatusOK

	destInfo, err := os.Stat(dest)
	if err != nil {
		return v1.Document{}, fmt.Errorf("unable to stat %s: %w", dest, err)
	}

	doc = documentFromInfo(theme, destInfo)
	x.log.Info().Str("theme", theme.Name).Str("document", filename).Int64("bytes", destInfo.Size()).Msg("added document")
	return doc, nil
}

// copyNoClobber copies content, permission bits and modification time. The
// destination is created exclusively so an existing file yields os.ErrExist.
func copyNoClobber(src, dest string, srcInfo os.FileInfo) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	return os.Chtimes(dest, srcInfo.ModTime(), srcInfo.ModTime())
}

func documentPath(theme v1.Theme, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return "", fmt.Errorf("%q: %w", filename, db.ErrInvalidFilename)
	}
	return filepath.Join(theme.Path, filename), nil
}

// DeleteDocument removes filename from theme.
func (x *Store) DeleteDocument(theme v1.Theme, filename string) error {
	p, err := documentPath(theme, filename)
	if err != nil {
		return err
	}

	finfo, err := os.Lstat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s in %s: %w", filename, theme.Name, db.ErrDocumentNotFound)
		}
		return err
	}
	if finfo.IsDir() {
		return fmt.Errorf("%s: %w", filename, db.ErrNotAFile)
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s in %s: %w", filename, theme.Name, db.ErrDocumentNotFound)
		}
		return fmt.Errorf("unable to delete %s from %s: %w", filename, theme.Name, err)
	}

	x.log.Info().Str("theme", theme.Name).Str("document", filename).Msg("deleted document")
	return nil
}

// DocumentPath returns the absolute path of an existing document.
func (x *Store) DocumentPath(theme v1.Theme, filename string) (string, error) {
	p, err := documentPath(theme, filename)
	if err != nil {
		return "", err
	}
	finfo, err := os.Stat(p)
	if err != nil || !finfo.Mode().IsRegular() {
		return "", fmt.Errorf("%s in %s: %w", filename, theme.Name, db.ErrDocumentNotFound)
	}
	return p, nil
}
