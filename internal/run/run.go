package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/harborhq/stevedore/internal/build"
	"github.com/harborhq/stevedore/internal/identity"
	"github.com/harborhq/stevedore/internal/project"
	"github.com/harborhq/stevedore/internal/runtime"
)

// Controls a workload run.
type Options struct {
	Inputs        *project.Inputs // Resolved project inputs.
	Tag           string          // Image tag to run.
	Argv          []string        // Workload argv; empty runs the baked default command.
	EnvFile       string          // Optional dotenv file forwarded into the container.
	BindManifests bool            // Additionally bind the project manifests read-only.
}

// Runs the project workload in a foreground container and returns its exit
// code.
//
// The invoking user's identity is captured synchronously and forwarded via
// the LOCAL_UID and LOCAL_GID environment variables; the in-container
// entrypoint reconciles the workload account to it before executing the
// workload. A root invocation is refused here, before any container is
// created. The container is interactive (TTY on stdio) and removed when the
// workload exits.
func Workload(ctx context.Context, rt *runtime.Runtime, opts Options) (int, error) {
	host := identity.Capture()
	if host.UID == 0 || host.GID == 0 {
		return 0, fmt.Errorf("%w: refusing to run the workload as root", identity.ErrRootIdentity)
	}

	ok, err := rt.HasImage(ctx, opts.Tag)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s (build the project first)", ErrNoImage, opts.Tag)
	}

	env, err := environment(host, opts.EnvFile)
	if err != nil {
		return 0, err
	}

	// A non-empty argv replaces the baked command but keeps the
	// identity-reconciling entrypoint in front of it.
	var args []string
	if len(opts.Argv) > 0 {
		args = append([]string{build.EntrypointPath, "init"}, opts.Argv...)
	}

	slog.Info("running workload", "tag", opts.Tag, "uid", host.UID, "gid", host.GID)

	return rt.Run(ctx, runtime.RunOptions{
		Image:  opts.Tag,
		ID:     opts.Inputs.Name + "-run",
		Args:   args,
		Env:    env,
		Mounts: mounts(opts.Inputs, opts.BindManifests),
		TTY:    true,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
}

// Assembles the container environment: env file entries first, identity
// variables last so they win on conflict.
func environment(host identity.Host, envFile string) ([]string, error) {
	var env []string

	if envFile != "" {
		entries, err := loadEnvFile(envFile)
		if err != nil {
			return nil, err
		}
		env = entries
	}

	return append(env, host.Environ()...), nil
}
