package cli

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// browserOpener opens URLs with the desktop's default handler.
type browserOpener struct{}

func (browserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// printOpener only prints the URL.
type printOpener struct {
	out io.Writer
}

func (p printOpener) Open(url string) error {
	_, err := fmt.Fprintf(p.out, "open %s\n", url)
	return err
}
