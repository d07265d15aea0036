package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "stevedore"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755
)

// Path to the directory for exported image archives.
//
//	Linux:   $XDG_STATE_HOME/stevedore/images or ~/.local/state/stevedore/images
//	macOS:   ~/Library/Application Support/stevedore/images
func Images() string {
	return filepath.Join(xdg.StateHome, toolName, "images")
}

// Path to the output directory for a single image, derived from its tag.
//
// The tag is slugified so the path is valid regardless of which characters
// the tag contains (e.g., "stevedore/app:3f1a" becomes "stevedore-app-3f1a").
func ImageDir(tag string) string {
	return filepath.Join(Images(), Slug(tag))
}

// Converts a tag or platform string to a filesystem-safe slug.
//
// Slashes and colons are replaced with dashes.
func Slug(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
