package filter

import (
	"fmt"

	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/types/v1"
)

// Lister produces the unfiltered documents, normally a theme's listing.
type Lister func() ([]v1.Document, error)

// FilteringBackend narrows a document listing to the filenames that fuzzy
// match whatever filterSource currently returns. The full listing is read
// once and the filtered view is recomputed only when the filter text changes.
type FilteringBackend struct {
	source         Lister
	filterSource   func() string
	filterText     string
	cachedFullList []v1.Document
	displayed      []v1.Document
}

func New(filterValue func() string, source Lister) (*FilteringBackend, error) {
	b := FilteringBackend{
		source:       source,
		filterSource: filterValue,
	}

	err := b.hardPopulate()
	if err != nil {
		return nil, fmt.Errorf("unable to populate filter: %w", err)
	}
	return &b, nil
}

func (b *FilteringBackend) hardPopulate() error {
	docs, err := b.source()
	if err != nil {
		return err
	}
	b.cachedFullList = docs
	b.applyFilter(b.filterSource())
	return nil
}

func (b *FilteringBackend) applyFilter(currentFilter string) {
	b.filterText = currentFilter
	if currentFilter == "" {
		b.displayed = b.cachedFullList
		return
	}

	// keep the listing order, a fuzzy rank reshuffles the list on every keystroke
	filtered := []v1.Document{}
	for _, d := range b.cachedFullList {
		if text.MatchesFilter(d.Filename, currentFilter) {
			filtered = append(filtered, d)
		}
	}
	b.displayed = filtered
}

func (b *FilteringBackend) cachedFilteredList() []v1.Document {
	currentFilter := b.filterSource()
	if currentFilter != b.filterText {
		b.applyFilter(currentFilter)
	}
	return b.displayed
}

// Refresh rereads the source listing.
func (b *FilteringBackend) Refresh() error {
	return b.hardPopulate()
}

func (b *FilteringBackend) List() []v1.Document { return b.cachedFilteredList() }
func (b *FilteringBackend) Count() int         { return len(b.cachedFilteredList()) }
func (b *FilteringBackend) FilterText() string { return b.filterText }
