package cli

import (
	"context"

	"github.com/harborhq/stevedore/internal/run"
)

// Represents the 'stevedore run' command.
type RunCmd struct {
	EnvFile       string   `help:"Forward a dotenv file into the container." placeholder:"PATH" type:"existingfile"`
	BindManifests bool     `help:"Also bind the project manifests read-only into the workdir (deprecated)."`
	Argv          []string `arg:"" optional:"" passthrough:"" help:"Workload command; defaults to the command baked into the image."`
}

// Executes the run command.
func (c *RunCmd) Run(ctx context.Context) error {
	return runWorkload(ctx, c.Argv, c.EnvFile, c.BindManifests)
}

// Represents the 'stevedore shell' command.
type ShellCmd struct {
	EnvFile       string `help:"Forward a dotenv file into the container." placeholder:"PATH" type:"existingfile"`
	BindManifests bool   `help:"Also bind the project manifests read-only into the workdir (deprecated)."`
}

// Executes the shell command, overriding the workload with an interactive
// shell.
func (c *ShellCmd) Run(ctx context.Context) error {
	return runWorkload(ctx, []string{"/bin/bash"}, c.EnvFile, c.BindManifests)
}

// Shared launcher for the run and shell commands.
//
// A non-zero workload exit code surfaces as an [ExitError] so the process
// can terminate with the same code.
func runWorkload(ctx context.Context, argv []string, envFile string, bindManifests bool) error {
	in, err := loadProject()
	if err != nil {
		return err
	}

	tag, err := in.Tag()
	if err != nil {
		return err
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	code, err := run.Workload(ctx, rt, run.Options{
		Inputs:        in,
		Tag:           tag,
		Argv:          argv,
		EnvFile:       envFile,
		BindManifests: bindManifests,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
