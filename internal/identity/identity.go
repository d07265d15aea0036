package identity

import (
	"fmt"
	"os"
	"strconv"
)

const (

	// Environment variable carrying the host user id.
	EnvUID = "LOCAL_UID"

	// Environment variable carrying the host group id.
	EnvGID = "LOCAL_GID"
)

// The numeric identity of the host user who invoked the run.
type Host struct {
	UID int // Host user id.
	GID int // Host group id.
}

// Captures the identity of the current process.
//
// Called by the run orchestrator on the host, synchronously at invocation
// time. The identity is forwarded to the container via [Host.Environ].
func Capture() Host {
	return Host{UID: os.Getuid(), GID: os.Getgid()}
}

// Parses the host identity from the environment.
//
// Both variables must be present and hold positive decimal integers. An
// absent variable refuses startup rather than falling back to the
// account's build-time placeholder ids: a silent fallback would produce
// bind-mount writes owned by the wrong user, which is the failure this
// tool exists to prevent. Id 0 is refused so the workload can never run
// as root.
func FromEnv(lookup func(string) (string, bool)) (Host, error) {
	uid, err := idFromEnv(lookup, EnvUID)
	if err != nil {
		return Host{}, err
	}

	gid, err := idFromEnv(lookup, EnvGID)
	if err != nil {
		return Host{}, err
	}

	return Host{UID: uid, GID: gid}, nil
}

// Parses a single identity variable.
func idFromEnv(lookup func(string) (string, bool), key string) (int, error) {
	raw, ok := lookup(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s is not set", ErrIdentityUnset, key)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a valid id", ErrIdentityInvalid, key, raw)
	}

	if id == 0 {
		return 0, fmt.Errorf("%w: %s=0", ErrRootIdentity, key)
	}

	return id, nil
}

// Returns the identity as environment variable assignments.
func (h Host) Environ() []string {
	return []string{
		fmt.Sprintf("%s=%d", EnvUID, h.UID),
		fmt.Sprintf("%s=%d", EnvGID, h.GID),
	}
}
