package build

import (
	"context"
	"fmt"
	"os"

	"github.com/harborhq/stevedore/internal/runtime"
)

// Removes a project's image and its exported archive.
//
// The image and any containers created from it are deleted from containerd,
// then the archive directory the build exported to is removed. Cleaning a
// project that was never built (or was already cleaned) is not an error.
func Clean(ctx context.Context, rt *runtime.Runtime, tag, output string) error {
	if err := rt.DestroyImage(ctx, tag); err != nil {
		return err
	}
	return removeArchive(output)
}

// Deletes the exported archive directory. A missing directory is a no-op.
func removeArchive(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
	}
	return nil
}
