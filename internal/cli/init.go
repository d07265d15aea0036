package cli

import (
	"context"
	"os"

	"github.com/harborhq/stevedore/internal/build"
	"github.com/harborhq/stevedore/internal/identity"
)

const (

	// Directory holding the account database inside the container.
	accountDir = "/etc"

	// Home directory of the workload account inside the container.
	accountHome = "/home/" + build.Account
)

// Represents the hidden 'stevedore init' command, the in-container
// entrypoint.
type InitCmd struct {
	Argv []string `arg:"" optional:"" passthrough:"" help:"Workload command."`
}

// Executes the init command.
//
// Runs as PID 1 with the container's initial root privileges. Reconciles the
// workload account's uid and gid to the values forwarded by the run
// orchestrator, applies the resulting plan to the account database and the
// filesystem, then replaces this process with the workload running as the
// reconciled account. Any failure aborts before the workload starts.
func (c *InitCmd) Run(ctx context.Context) error {
	host, err := identity.FromEnv(os.LookupEnv)
	if err != nil {
		return err
	}

	db, err := identity.Load(accountDir)
	if err != nil {
		return err
	}

	plan, err := identity.Reconcile(host, build.Account, db, []string{accountHome, build.WorkDir})
	if err != nil {
		return err
	}

	if err := identity.Apply(plan, db, accountDir); err != nil {
		return err
	}

	argv := c.Argv
	if len(argv) == 0 {
		argv = build.DefaultCommand
	}

	return identity.Transition(build.Account, argv, os.Environ())
}
