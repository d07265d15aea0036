package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Length of the tag's digest suffix in hex characters.
const tagDigestLength = 12

// Characters not permitted in an OCI reference tag or repository component.
var tagUnsafe = regexp.MustCompile(`[^a-z0-9-]+`)

// Computes a digest over all build inputs.
//
// The digest covers the version pin, the descriptor, and both lock
// manifests, each prefixed with its filename so content cannot shift
// between files without changing the result. The README is excluded: the
// package manager reads it during sync but it never affects the dependency
// set.
func (in *Inputs) Fingerprint() (digest.Digest, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n%s\n", PinFile, in.PythonVersion)

	for _, path := range []string{in.Descriptor, in.Lock, in.DevLock} {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMissingManifest, err)
		}
		fmt.Fprintf(&buf, "%s\n", filepath.Base(path))
		buf.Write(b)
		buf.WriteByte('\n')
	}

	return digest.FromBytes(buf.Bytes()), nil
}

// Returns the deterministic image tag for the project.
//
// The tag is "stevedore/<name>:<digest prefix>" where the digest covers the
// version pin and all lock manifests. Two builds from identical inputs
// produce the identical tag.
func (in *Inputs) Tag() (string, error) {
	fp, err := in.Fingerprint()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("stevedore/%s:%s", slugName(in.Name), fp.Encoded()[:tagDigestLength]), nil
}

// Converts a project name to a valid OCI repository component.
func slugName(name string) string {
	slug := tagUnsafe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
