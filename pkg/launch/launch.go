// Package launch hands a file to the desktop's default application.
package launch

import (
	"fmt"
	"os/exec"
	"runtime"
)

type Launcher interface {
	Open(path string) error
}

// Command returns the argv that opens path on goos.
func Command(goos, path string) []string {
	switch goos {
	case "darwin":
		return []string{"open", path}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", path}
	default:
		return []string{"xdg-open", path}
	}
}

type system struct {
	goos  string
	start func(argv []string) error
}

// Default returns the launcher for the running platform.
func Default() Launcher {
	return system{goos: runtime.GOOS, start: startDetached}
}

func (s system) Open(path string) error {
	argv := Command(s.goos, path)
	if err := s.start(argv); err != nil {
		return fmt.Errorf("unable to run %s: %w", argv[0], err)
	}
	return nil
}

// startDetached starts the viewer without waiting for it to exit.
func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() // reap
	return nil
}
