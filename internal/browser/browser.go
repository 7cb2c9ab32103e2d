// Package browser opens URLs in the operating system's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenURL launches the default browser for url without waiting for it.
func OpenURL(url string) error {
	if url == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Start()
}
