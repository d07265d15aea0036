package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/harborhq/stevedore/internal/paths"
	"github.com/harborhq/stevedore/internal/runtime"
)

// Controls recipe execution.
type Options struct {
	Recipe   *Recipe             // Recipe to execute.
	Name     string              // Project name, used as a prefix for the container ID.
	Tag      string              // Tag the exported image is imported under.
	Output   string              // Directory for the exported archive.
	Root     string              // Project root, for resolving copy sources.
	Platform string              // Target platform (e.g., "linux/amd64"). Defaults to host.
	Config   runtime.ImageConfig // Runtime configuration baked into the image.
}

// Returned after successful recipe execution.
type Result struct {
	Output string // Directory containing the exported archive.
	Tag    string // Tag the image was imported under.
}

// Executes a recipe against the container runtime.
//
// The base image is pulled, a single build container is started with the
// recipe's mounts, and the stages run in declaration order inside it. The
// accumulated filesystem changes are committed as one layer, exported to
// the output directory, and imported under the tag. The build container is
// destroyed regardless of outcome; a failed stage publishes nothing.
func Run(ctx context.Context, rt *runtime.Runtime, opts Options) (*Result, error) {
	if opts.Platform == "" {
		opts.Platform = runtime.DefaultPlatform()
	}

	slog.Info("executing recipe",
		"name", opts.Name,
		"tag", opts.Tag,
		"output", opts.Output,
		"stages", len(opts.Recipe.Stages),
		"platform", opts.Platform,
	)

	if err := os.MkdirAll(opts.Output, paths.DefaultDirMode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}

	if err := rt.Pull(ctx, opts.Recipe.BaseImage, opts.Platform); err != nil {
		return nil, err
	}

	ctr, err := rt.StartBuild(ctx, opts.Recipe.BaseImage, opts.Name+"-build", opts.Platform, opts.Recipe.Mounts)
	if err != nil {
		return nil, err
	}
	defer ctr.Destroy(context.WithoutCancel(ctx))

	for _, stage := range opts.Recipe.Stages {
		if err := buildStage(ctx, ctr, stage, opts.Root); err != nil {
			return nil, fmt.Errorf("%w: stage %q: %w", ErrBuild, stage.Name, err)
		}
	}

	if err := ctr.Stop(ctx); err != nil {
		return nil, err
	}

	if err := ctr.Export(ctx, opts.Output, opts.Config); err != nil {
		return nil, err
	}

	archive := filepath.Join(opts.Output, runtime.ExportFilename)
	if err := rt.ImportImage(ctx, archive, opts.Tag); err != nil {
		return nil, err
	}

	return &Result{Output: opts.Output, Tag: opts.Tag}, nil
}

// Executes a single stage's steps with a fresh step state.
func buildStage(ctx context.Context, ctr *runtime.Container, stage Stage, root string) error {
	slog.Info(fmt.Sprintf("building stage %q", stage.Name))
	return executeSteps(ctx, ctr, stage.Steps, newStepState(), root)
}
