package runtime

import (
	"errors"
	"fmt"
)

var (
	ErrRuntime        = errors.New("runtime error")
	ErrEmptyArchive   = errors.New("archive contains no image")
	ErrMultipleImages = errors.New("archive contains multiple images")
	ErrEmptyIndex     = errors.New("empty image index")
)

// Marks an error as originating from the container runtime.
func wrapRuntime(err error) error {
	return fmt.Errorf("%w: %w", ErrRuntime, err)
}
