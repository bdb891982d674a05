package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	libraryout "studyplanner/internal/modules/library/port/out"
)

type OSExternalLauncher struct{}

// NewOSExternalLauncher opens links with the desktop's default handler.
func NewOSExternalLauncher() libraryout.ExternalLauncher {
	return &OSExternalLauncher{}
}

func (*OSExternalLauncher) Open(ctx context.Context, target string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{target}
	case "linux", "freebsd", "openbsd":
		name, args = "xdg-open", []string{target}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return fmt.Errorf("external open is not supported on %s", runtime.GOOS)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("open external target: %w", err)
	}
	return nil
}
