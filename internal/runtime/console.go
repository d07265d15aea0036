package runtime

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/containerd/console"
	containerd "github.com/containerd/containerd/v2/client"
)

// Returns the console behind the given stdin, or nil when stdin is not an
// interactive terminal.
//
// Raw mode and resize forwarding only make sense when the workload's stdin
// is the invoking user's terminal; piped or redirected input is left alone.
func terminalFor(stdin io.Reader) console.Console {
	f, ok := stdin.(console.File)
	if !ok {
		return nil
	}

	con, err := console.ConsoleFromFile(f)
	if err != nil {
		return nil
	}
	return con
}

// Sizes the task's terminal to the host console and keeps it in sync.
//
// The current size is applied immediately, then SIGWINCH is watched until
// stop is closed. Resize failures are logged and skipped; a stale window
// size is not worth aborting the workload over.
func forwardResize(ctx context.Context, task containerd.Task, con console.Console, stop <-chan struct{}) {
	resize := func() {
		size, err := con.Size()
		if err != nil {
			return
		}
		if err := task.Resize(ctx, uint32(size.Width), uint32(size.Height)); err != nil {
			slog.Debug("terminal resize failed", "error", err)
		}
	}
	resize()

	sigc := make(chan os.Signal, 16)
	signal.Notify(sigc, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sigc)
		for {
			select {
			case <-sigc:
				resize()
			case <-stop:
				return
			}
		}
	}()
}
