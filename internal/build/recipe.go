package build

import "github.com/harborhq/stevedore/internal/runtime"

// A declarative image build recipe.
//
// The recipe is executed inside a single build container started from the
// base image. Stages run in declaration order and accumulate their changes
// in the container's filesystem; the combined result is committed as one
// layer at export. Bind mounts exist only for the duration of the build and
// never appear in the exported image.
type Recipe struct {
	BaseImage string          // Image ref the build container starts from.
	Stages    []Stage         // Stages executed in order.
	Mounts    []runtime.Mount // Host paths visible during the build only.
}

// A named group of build steps.
//
// Stage names appear in logs and error messages. Step state (shell, workdir,
// environment) is scoped to the stage; each stage starts from defaults.
type Stage struct {
	Name  string // Stage label (e.g., "tools", "dependencies").
	Steps []Step // Steps executed in order.
}

// A single build instruction.
//
// A step is either an operation (Run or Copy), a standalone modifier (Shell,
// Workdir, Env with no operation), or a group (Steps) whose modifiers apply
// to the nested steps. Modifiers on an operation step override the
// accumulated state for that operation only.
type Step struct {
	Run     string            // Shell command executed in the container.
	Copy    string            // "src dest" host-to-container copy.
	Shell   string            // Shell override for run steps.
	Workdir string            // Working directory override.
	Env     map[string]string // Environment entries.
	Steps   []Step            // Nested steps sharing this step's modifiers.
}
