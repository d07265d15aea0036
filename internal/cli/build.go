package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/harborhq/stevedore/internal/build"
	"github.com/harborhq/stevedore/internal/paths"
)

// Represents the 'stevedore build' command.
type BuildCmd struct {
	Dev bool `help:"Install development dependencies as well."`
}

// Executes the build command.
//
// Resolves the project inputs, verifies lock fidelity, and executes the
// default provisioning recipe. The image is imported under the project's
// deterministic tag; rebuilding from identical inputs produces the identical
// tag.
func (c *BuildCmd) Run(ctx context.Context) error {
	in, err := loadProject()
	if err != nil {
		return err
	}

	if err := in.VerifyLock(); err != nil {
		return err
	}

	tag, err := in.Tag()
	if err != nil {
		return err
	}

	executable, err := os.Executable()
	if err != nil {
		return err
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := build.Run(ctx, rt, build.Options{
		Recipe: build.DefaultRecipe(in, build.RecipeOptions{
			Dev:        c.Dev,
			Executable: executable,
		}),
		Name:   in.Name,
		Tag:    tag,
		Output: paths.ImageDir(tag),
		Root:   in.Root,
		Config: build.DefaultImageConfig(),
	})
	if err != nil {
		return err
	}

	slog.Info("build complete", "tag", result.Tag, "output", result.Output)
	return nil
}
