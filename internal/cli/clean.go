package cli

import (
	"context"
	"log/slog"

	"github.com/harborhq/stevedore/internal/build"
	"github.com/harborhq/stevedore/internal/paths"
)

// Represents the 'stevedore clean' command.
type CleanCmd struct{}

// Executes the clean command.
//
// Removes the image built for the project's current inputs, any containers
// created from it, and the exported archive. A subsequent run requires a
// fresh build.
func (c *CleanCmd) Run(ctx context.Context) error {
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

	if err := build.Clean(ctx, rt, tag, paths.ImageDir(tag)); err != nil {
		return err
	}

	slog.Info("image removed", "tag", tag)
	return nil
}
