package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// openURL is a test seam for launching the system browser.
var openURL = func(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// OpenMap launches the public city map in the system browser. When no
// browser can be started the URL is printed so the user can open it by hand.
func (a *App) OpenMap(ctx context.Context) error {
	if a.mapURL == "" {
		fmt.Fprintln(a.out, "No map URL configured")
		return nil
	}
	if err := openURL(a.mapURL); err != nil {
		a.log.Debug(ctx, "browser launch failed", "err", err)
		fmt.Fprintln(a.out, "Open the city map at:", a.mapURL)
		return nil
	}
	fmt.Fprintln(a.out, "Opening", a.mapURL)
	return nil
}
