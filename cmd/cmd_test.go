package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/byxorna/shelf/pkg/db"
)

type recordingLauncher struct {
	opened []string
}

func (l *recordingLauncher) Open(path string) error {
	l.opened = append(l.opened, path)
	return nil
}

type harness struct {
	t        *testing.T
	config   string
	root     string
	launcher *recordingLauncher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "themes")
	config := filepath.Join(dir, "shelf.yaml")
	body := fmt.Sprintf("directory: %s\nlogFile: %s\nlogLevel: debug\n", root, filepath.Join(dir, "shelf.log"))
	if err := ioutil.WriteFile(config, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return &harness{t: t, config: config, root: root, launcher: &recordingLauncher{}}
}

// run executes the command line with stdin and returns stdout, stderr and
// the error RunE returned.
func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&options{launcher: h.launcher})
	root.SetArgs(append([]string{"--config", h.config}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, errOut, err := h.run("", args...)
	if err != nil {
		h.t.Fatalf("%v: %v (stderr: %s)", args, err, errOut)
	}
	return out
}

func writeSource(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(p, []byte(name), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestThemeCommands(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("theme", "create", "Família Silva"); !strings.Contains(out, "familia_silva") {
		t.Fatalf("unexpected create output %q", out)
	}
	if _, _, err := h.run("", "theme", "create", "  FAMILIA silva "); db.KindOf(err) != db.KindConflict {
		t.Fatalf("expected a conflict, got %v", err)
	}
	if _, _, err := h.run("", "theme", "create", "!!!"); db.KindOf(err) != db.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	h.mustRun("theme", "rename", "familia_silva", "Outra Família")
	out := h.mustRun("theme", "list")
	if !strings.Contains(out, "outra_familia") || strings.Contains(out, "familia_silva") {
		t.Fatalf("unexpected listing %q", out)
	}
}

func TestThemeDeletePrompts(t *testing.T) {
	h := newHarness(t)
	h.mustRun("theme", "create", "processos")

	out, _, err := h.run("n\n", "theme", "delete", "processos")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cancelled") {
		t.Fatalf("expected the delete to be cancelled, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(h.root, "processos")); err != nil {
		t.Fatalf("expected processos to survive: %v", err)
	}

	if _, _, err := h.run("y\n", "theme", "delete", "processos"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(h.root, "processos")); !os.IsNotExist(err) {
		t.Fatalf("expected processos to be removed, got %v", err)
	}
}

func TestMissingThemeIsANotice(t *testing.T) {
	h := newHarness(t)
	_, errOut, err := h.run("", "theme", "delete", "--yes", "nada")
	if err != nil {
		t.Fatalf("expected a missing theme to exit cleanly, got %v", err)
	}
	if !strings.Contains(errOut, "no theme found") {
		t.Fatalf("expected a notice on stderr, got %q", errOut)
	}
}

func TestMissingThemeIsAnError(t *testing.T) {
	h := newHarness(t)
	src := t.TempDir()
	for _, args := range [][]string{
		{"doc", "add", "nada", writeSource(t, "x.pdf")},
		{"doc", "import", "nada", src},
		{"doc", "list", "nada"},
		{"doc", "open", "nada", "x.pdf"},
		{"theme", "rename", "nada", "novo"},
	} {
		_, _, err := h.run("", args...)
		if !errors.Is(err, db.ErrThemeNotFound) {
			t.Errorf("%v: expected a missing theme error, got %v", args, err)
		}
	}
	if _, err := os.Stat(filepath.Join(h.root, "novo")); !os.IsNotExist(err) {
		t.Errorf("rename of a missing theme created something: %v", err)
	}
}

func TestDocCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("theme", "create", "contratos")

	a := writeSource(t, "contrato.pdf")
	b := writeSource(t, "Petição Inicial.docx")
	h.mustRun("doc", "add", "contratos", a, b)

	out := h.mustRun("doc", "list", "contratos")
	if !strings.Contains(out, "contrato.pdf") || !strings.Contains(out, "Petição Inicial.docx") {
		t.Fatalf("unexpected listing %q", out)
	}

	out = h.mustRun("doc", "list", "contratos", "--filter", "peticao")
	if strings.Contains(out, "contrato.pdf") || !strings.Contains(out, "Petição Inicial.docx") {
		t.Fatalf("unexpected filtered listing %q", out)
	}

	out = h.mustRun("doc", "find", "contratos", "pdf")
	if strings.TrimSpace(out) == "" || strings.Contains(out, "docx") {
		t.Fatalf("unexpected find result %q", out)
	}

	// same name again is a conflict
	if _, _, err := h.run("", "doc", "add", "contratos", a); db.KindOf(err) != db.KindConflict {
		t.Fatalf("expected a conflict, got %v", err)
	}
	// wrong type is rejected
	if _, _, err := h.run("", "doc", "add", "contratos", writeSource(t, "notas.txt")); db.KindOf(err) != db.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	h.mustRun("doc", "open", "contratos", "contrato.pdf")
	if len(h.launcher.opened) != 1 || h.launcher.opened[0] != filepath.Join(h.root, "contratos", "contrato.pdf") {
		t.Fatalf("unexpected launches %v", h.launcher.opened)
	}

	h.mustRun("doc", "delete", "--yes", "contratos", "contrato.pdf")
	_, errOut, err := h.run("", "doc", "open", "contratos", "contrato.pdf")
	if err != nil {
		t.Fatalf("expected a missing document to exit cleanly, got %v", err)
	}
	if !strings.Contains(errOut, "no document found") {
		t.Fatalf("expected a notice on stderr, got %q", errOut)
	}
}

func TestDocImport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("theme", "create", "arquivo")

	src := t.TempDir()
	for _, p := range []string{"a.pdf", "sub/b.docx", "sub/c.txt"} {
		full := filepath.Join(src, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(full, []byte(p), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out := h.mustRun("doc", "import", "arquivo", src)
	if !strings.Contains(out, "imported 2") {
		t.Fatalf("unexpected import output %q", out)
	}
	out = h.mustRun("doc", "import", "arquivo", src)
	if !strings.Contains(out, "imported 0 document(s), skipped 2") {
		t.Fatalf("expected a second import to skip everything, got %q", out)
	}
}

func TestTreeRaw(t *testing.T) {
	h := newHarness(t)
	h.mustRun("theme", "create", "contratos")
	h.mustRun("doc", "add", "contratos", writeSource(t, "contrato.pdf"))

	out := h.mustRun("tree", "--raw")
	if !strings.Contains(out, "contratos (1)") || !strings.Contains(out, "`contrato.pdf`") {
		t.Fatalf("unexpected tree %q", out)
	}
}

func TestNormalizeCmd(t *testing.T) {
	h := newHarness(t)
	if out := h.mustRun("normalize", "São", "Paulo"); strings.TrimSpace(out) != "sao_paulo" {
		t.Fatalf("unexpected normalize output %q", out)
	}
	if _, _, err := h.run("", "normalize", "!!!"); db.KindOf(err) != db.KindValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		" y ":   true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"nope":  false,
	}
	for in, want := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(in), &out, "Delete?")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("expected the prompt, got %q", out.String())
		}
	}
}
