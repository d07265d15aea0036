package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harborhq/stevedore/internal/runtime"
)

// Executes a list of steps in order against the build container.
func executeSteps(ctx context.Context, ctr *runtime.Container, steps []Step, state *stepState, root string) error {
	for i, step := range steps {
		if err := executeStep(ctx, ctr, step, state, root); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Executes a single step, dispatching to operation execution, group
// recursion, or state mutation depending on the step's fields.
func executeStep(ctx context.Context, ctr *runtime.Container, step Step, state *stepState, root string) error {
	hasOp := step.Run != "" || step.Copy != ""

	// Group: apply group-level modifiers and recurse.
	if len(step.Steps) > 0 {
		state.apply(step)
		return executeSteps(ctx, ctr, step.Steps, state, root)
	}

	// Operation with optional scoped modifiers.
	if hasOp {
		return executeOperation(ctx, ctr, step, state, root)
	}

	// Standalone modifier(s): persist in state.
	state.apply(step)
	return nil
}

// Executes a run or copy operation with scoped modifier overrides.
//
// Step-level modifiers override the persistent state for this operation
// only. The persistent state is not modified.
func executeOperation(ctx context.Context, ctr *runtime.Container, step Step, state *stepState, root string) error {
	resolved := state.resolve(step)

	if resolved.workdir != "" {
		if err := ctr.MkdirAll(ctx, resolved.workdir); err != nil {
			return err
		}
	}

	switch {
	case step.Run != "":
		slog.Debug("run", "command", step.Run, "shell", resolved.shell)
		result, err := ctr.Exec(ctx, resolved.shell, step.Run, resolved.environ(), resolved.workdir)
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			return fmt.Errorf("%w: exit code %d: %s", ErrCommandFailed, result.ExitCode, result.Stderr)
		}

	case step.Copy != "":
		if err := executeCopy(ctx, ctr, step.Copy, resolved.workdir, root); err != nil {
			return err
		}
	}

	return nil
}
