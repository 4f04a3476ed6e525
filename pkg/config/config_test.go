package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func unsetEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDirectory, EnvLogLevel, EnvLogFile} {
		old, ok := os.LookupEnv(k)
		os.Unsetenv(k)
		if ok {
			k := k
			t.Cleanup(func() { os.Setenv(k, old) })
		}
	}
}

func TestNewFromReader(t *testing.T) {
	unsetEnv(t)
	c, err := NewFromReader(strings.NewReader(`
directory: /srv/shelf
logLevel: debug
altScreen: false
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Directory: "/srv/shelf", LogLevel: "debug", AltScreen: false}
	if diff := pretty.Compare(*c, want); diff != "" {
		t.Fatalf("unexpected config (-got +want):\n%s", diff)
	}
}

func TestDefaultsFillUnsetFields(t *testing.T) {
	unsetEnv(t)
	c, err := NewFromReader(strings.NewReader("directory: /srv/shelf\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != Default.LogLevel || c.AltScreen != Default.AltScreen {
		t.Fatalf("expected defaults to survive, got %+v", c)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	unsetEnv(t)
	if _, err := NewFromReader(strings.NewReader("logLevel: chatty\n")); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	unsetEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Compare(*c, Default); diff != "" {
		t.Fatalf("expected defaults (-got +want):\n%s", diff)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	unsetEnv(t)
	p := filepath.Join(t.TempDir(), "shelf.yaml")
	if err := ioutil.WriteFile(p, []byte("directory: /from/file\nlogLevel: warn\n"), 0600); err != nil {
		t.Fatal(err)
	}
	os.Setenv(EnvDirectory, "/from/env")
	t.Cleanup(func() { os.Unsetenv(EnvDirectory) })

	c, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Directory != "/from/env" {
		t.Fatalf("expected %s to win, got %s", EnvDirectory, c.Directory)
	}
	if c.LogLevel != "warn" {
		t.Fatalf("expected the file's log level, got %s", c.LogLevel)
	}
}
