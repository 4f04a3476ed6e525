package launch

import (
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestCommand(t *testing.T) {
	const p = "/data/themes/contratos/contrato.pdf"
	tests := []struct {
		goos string
		want []string
	}{
		{"linux", []string{"xdg-open", p}},
		{"freebsd", []string{"xdg-open", p}},
		{"darwin", []string{"open", p}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", p}},
	}
	for _, tt := range tests {
		if diff := pretty.Compare(Command(tt.goos, p), tt.want); diff != "" {
			t.Errorf("%s: unexpected command (-got +want):\n%s", tt.goos, diff)
		}
	}
}

func TestOpen(t *testing.T) {
	var started []string
	l := system{goos: "darwin", start: func(argv []string) error {
		started = argv
		return nil
	}}
	if err := l.Open("/tmp/a.pdf"); err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Compare(started, []string{"open", "/tmp/a.pdf"}); diff != "" {
		t.Fatalf("unexpected command (-got +want):\n%s", diff)
	}

	boom := errors.New("boom")
	l.start = func([]string) error { return boom }
	if err := l.Open("/tmp/a.pdf"); !errors.Is(err, boom) {
		t.Fatalf("expected the start error to be wrapped, got %v", err)
	}
}
