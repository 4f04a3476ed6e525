package filter

import (
	"testing"

	"github.com/byxorna/shelf/pkg/types/v1"
	"github.com/kylelemons/godebug/pretty"
)

func filenames(docs []v1.Document) []string {
	names := []string{}
	for _, d := range docs {
		names = append(names, d.Filename)
	}
	return names
}

func TestFilteringBackend(t *testing.T) {
	reads := 0
	source := func() ([]v1.Document, error) {
		reads++
		return []v1.Document{
			{Filename: "contrato.pdf"},
			{Filename: "Petição Inicial.docx"},
			{Filename: "procuração.pdf"},
		}, nil
	}

	needle := ""
	b, err := New(func() string { return needle }, source)
	if err != nil {
		t.Fatal(err)
	}

	if b.Count() != 3 {
		t.Fatalf("expected everything with an empty filter, got %v", filenames(b.List()))
	}

	needle = "peticao"
	if diff := pretty.Compare(filenames(b.List()), []string{"Petição Inicial.docx"}); diff != "" {
		t.Fatalf("unexpected filter result (-got +want):\n%s", diff)
	}

	needle = "pdf"
	if diff := pretty.Compare(filenames(b.List()), []string{"contrato.pdf", "procuração.pdf"}); diff != "" {
		t.Fatalf("unexpected filter result (-got +want):\n%s", diff)
	}

	if reads != 1 {
		t.Fatalf("expected the source to be read once, got %d", reads)
	}

	if err := b.Refresh(); err != nil {
		t.Fatal(err)
	}
	if reads != 2 {
		t.Fatalf("expected Refresh to reread the source, got %d reads", reads)
	}
}
