package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/harborhq/stevedore/internal"
	"github.com/harborhq/stevedore/internal/project"
	"github.com/harborhq/stevedore/internal/runtime"
)

// Represents the root command for the stevedore CLI.
var RootCmd struct {
	Quiet      bool       `short:"q" help:"Suppress informational output."`
	Debug      bool       `short:"d" help:"Enable debug output."`
	Root       string     `short:"C" help:"Project root directory." default:"." type:"existingdir"`
	Containerd string     `help:"Containerd socket address." default:"/run/containerd/containerd.sock" placeholder:"PATH"`
	Namespace  string     `help:"Containerd namespace." default:"stevedore"`
	Build      BuildCmd   `cmd:"" help:"Build the project image."`
	Run        RunCmd     `cmd:"" help:"Run the project workload."`
	Shell      ShellCmd   `cmd:"" help:"Open an interactive shell in a workload container."`
	Clean      CleanCmd   `cmd:"" help:"Remove the project's image and exported archive."`
	Init       InitCmd    `cmd:"" hidden:"" help:"In-container entrypoint."`
	Version    VersionCmd `cmd:"" help:"Show version information (${version})."`
}

// Carries a workload exit code out of command execution so the process can
// terminate with the same code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("workload exited with code %d", e.Code)
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Provisions and runs a containerized Python project with host-matched file ownership."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
//
// Flags override build-time defaults set via linker flags.
func configureLogger() {
	handler, ok := slog.Default().Handler().(*charmlog.Logger)
	if !ok {
		return
	}

	switch {
	case RootCmd.Debug || internal.IsDebug():
		handler.SetLevel(charmlog.DebugLevel)
	case RootCmd.Quiet || internal.IsQuiet():
		handler.SetLevel(charmlog.WarnLevel)
	default:
		handler.SetLevel(charmlog.InfoLevel)
	}
}

// Connects to containerd using the root command's flags.
func openRuntime() (*runtime.Runtime, error) {
	return runtime.New(RootCmd.Containerd, RootCmd.Namespace)
}

// Loads the project inputs from the root command's project directory.
func loadProject() (*project.Inputs, error) {
	return project.Load(RootCmd.Root)
}
