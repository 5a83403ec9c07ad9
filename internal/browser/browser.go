// Package browser opens rendered documents in the system default browser.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// OpenFile opens path with the platform's default handler. BROWSER, when
// set, takes precedence.
func OpenFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}

	if b := os.Getenv("BROWSER"); b != "" {
		return run(b, path)
	}

	switch runtime.GOOS {
	case "darwin":
		return run("open", path)
	case "windows":
		return run("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return run("xdg-open", path)
	}
}

func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
