package picker

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/byxorna/shelf/pkg/types/v1"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/gitcha"
)

// Patterns are the glob patterns of files that can be added to a theme. Glob
// matching is case sensitive, so every letter of an extension becomes a
// class: .pdf turns into *.[pP][dD][fF].
func Patterns() []string {
	patterns := []string{}
	for _, ext := range v1.AllowedExtensions {
		var b strings.Builder
		b.WriteString("*")
		for _, r := range ext {
			lower, upper := strings.ToLower(string(r)), strings.ToUpper(string(r))
			if lower == upper {
				b.WriteRune(r)
				continue
			}
			fmt.Fprintf(&b, "[%s%s]", lower, upper)
		}
		patterns = append(patterns, b.String())
	}
	return patterns
}

// Scan walks dir and returns every addable document below it, sorted.
// Anything a .gitignore excludes is skipped.
func Scan(dir string) ([]string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, err
	}

	var ignore []string // ignore patterns
	ch, err := gitcha.FindFilesExcept(abs, Patterns(), ignore)
	if err != nil {
		return nil, fmt.Errorf("unable to scan %s: %w", abs, err)
	}

	found := []string{}
	for res := range ch {
		if res.Info == nil || !res.Info.Mode().IsRegular() {
			continue
		}
		if strings.HasPrefix(filepath.Base(res.Path), ".") {
			continue
		}
		// the allow-list has the final say over the patterns
		if !v1.IsAllowedExtension(res.Path) {
			continue
		}
		found = append(found, res.Path)
	}
	sort.Strings(found)
	return found, nil
}
