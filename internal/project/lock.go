package project

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Runs of the characters PEP 503 treats as equivalent in package names.
var nameSeparators = regexp.MustCompile(`[-_.]+`)

// Parses a lock manifest into a map of normalized package name to pinned
// version.
//
// The manifest is the requirements format emitted by the lock step: one
// "name==version" entry per line, possibly with an extras suffix on the
// name. Comments, blank lines, option lines (leading "-"), and hash
// continuation lines are skipped. Entries without an exact pin are ignored;
// only pinned entries participate in the fidelity check.
func ParseLock(content []byte) map[string]string {
	pinned := make(map[string]string)

	for line := range strings.Lines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		name, version, ok := strings.Cut(line, "==")
		if !ok {
			continue
		}

		// Strip an extras suffix: "name[extra1,extra2]".
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}

		// Drop trailing environment markers or continuation backslashes.
		if i := strings.IndexAny(version, " ;\\"); i >= 0 {
			version = version[:i]
		}

		pinned[NormalizeName(name)] = strings.TrimSpace(version)
	}

	return pinned
}

// Normalizes a package name per PEP 503: lowercase with runs of hyphens,
// underscores, and dots collapsed to a single hyphen.
func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Extracts the bare package name from a dependency specifier.
//
// A specifier may carry extras, version constraints, and environment markers
// (e.g., "requests[socks]>=2.31 ; python_version > '3.8'"). Everything from
// the first extras bracket, constraint operator, space, or marker separator
// onward is discarded.
func DependencyName(spec string) string {
	spec = strings.TrimSpace(spec)
	if i := strings.IndexAny(spec, "[(<>=!~; "); i >= 0 {
		spec = spec[:i]
	}
	return spec
}

// Checks that every dependency declared by the descriptor has a pinned
// entry in the production lock manifest.
//
// Returns an error naming all unpinned dependencies. This is the host-side
// half of the no-relock policy: the sync step inside the build container
// refuses to re-resolve, and this check reports the inconsistency before a
// build container is ever created.
func (in *Inputs) VerifyLock() error {
	content, err := os.ReadFile(in.Lock)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingManifest, err)
	}

	pinned := ParseLock(content)

	var missing []string
	for _, dep := range in.Dependencies {
		name := NormalizeName(DependencyName(dep))
		if name == "" {
			continue
		}
		if _, ok := pinned[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: not pinned in %s: %s",
			ErrLockMismatch, LockFile, strings.Join(missing, ", "))
	}

	return nil
}
