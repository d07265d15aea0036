package identity

import (
	"fmt"
	"os/exec"
	"syscall"
)

// Privilege-transition tool baked into the image.
//
// gosu runs a command as another account while passing the console,
// environment, and signals through transparently, without the session
// semantics of su or sudo.
const transitionTool = "gosu"

// Replaces the current process image with the workload running as the
// given account.
//
// The transition tool becomes the new process image via exec(2), so the
// workload inherits PID 1 semantics, the environment, and the standard
// streams. Only returns on failure: a missing or non-executable transition
// tool fails here, before the workload ever runs.
func Transition(account string, argv, env []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty workload command", ErrTransition)
	}

	path, err := exec.LookPath(transitionTool)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransition, err)
	}

	args := append([]string{transitionTool, account}, argv...)
	if err := syscall.Exec(path, args, env); err != nil {
		return fmt.Errorf("%w: %w", ErrTransition, err)
	}

	return nil
}
