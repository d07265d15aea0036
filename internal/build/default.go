package build

import (
	"fmt"
	"path/filepath"

	"github.com/harborhq/stevedore/internal/project"
	"github.com/harborhq/stevedore/internal/runtime"
)

const (

	// Name of the unprivileged account the workload runs as.
	Account = "app"

	// Placeholder uid and gid assigned to the account at build time. The
	// entrypoint reconciles them to the invoking host user at startup.
	PlaceholderID = 999

	// Working directory of the workload inside the container.
	WorkDir = "/app"

	// Path the entrypoint binary is installed at inside the image.
	EntrypointPath = "/usr/local/bin/stevedore"

	// Installation root of the package manager inside the image.
	ryeHome = "/opt/rye"

	// Package manager binary via its shim, usable without PATH changes.
	ryeBin = ryeHome + "/shims/rye"
)

// Default workload command baked into the image and used by the run
// orchestrator when no argv is given.
var DefaultCommand = []string{"python", "src/main.py"}

// Controls default recipe generation.
type RecipeOptions struct {
	Dev        bool   // Install development dependencies as well.
	Executable string // Host path of the binary installed as the entrypoint.
}

// Returns the base image ref for a given interpreter version pin.
func BaseImage(pin string) string {
	return "docker.io/library/python:" + pin + "-slim"
}

// Builds the standard provisioning recipe for a project.
//
// Five stages: auxiliary tools, the unprivileged account, the package
// manager, the locked dependencies, and the entrypoint binary. The project
// manifests are bind-mounted read-only into the workdir for the duration of
// the build so the dependency sync sees them without committing them to a
// layer.
func DefaultRecipe(in *project.Inputs, opts RecipeOptions) *Recipe {
	sync := ryeBin + " sync --no-lock --no-dev"
	if opts.Dev {
		sync = ryeBin + " sync --no-lock"
	}

	return &Recipe{
		BaseImage: BaseImage(in.PythonVersion),
		Mounts:    ManifestMounts(in),
		Stages: []Stage{
			{
				Name: "tools",
				Steps: []Step{
					{Run: "apt-get update && apt-get install -y --no-install-recommends curl gosu && rm -rf /var/lib/apt/lists/*"},
				},
			},
			{
				Name: "account",
				Steps: []Step{
					{Run: fmt.Sprintf("groupadd --gid %d %s", PlaceholderID, Account)},
					{Run: fmt.Sprintf("useradd --uid %d --gid %d --create-home --shell /bin/bash %s", PlaceholderID, PlaceholderID, Account)},
				},
			},
			{
				Name: "package-manager",
				Steps: []Step{
					{
						Shell: "/bin/bash",
						Env: map[string]string{
							"RYE_HOME":           ryeHome,
							"RYE_INSTALL_OPTION": "--yes",
							"RYE_TOOLCHAIN":      "/usr/local/bin/python3",
						},
					},
					{Run: "curl -sSf https://rye.astral.sh/get | bash"},
					{Run: ryeBin + " config --set-bool behavior.global-python=true"},
					{Run: ryeBin + " config --set-bool behavior.use-uv=true"},
				},
			},
			{
				Name: "dependencies",
				Steps: []Step{
					{
						Workdir: WorkDir,
						Env: map[string]string{
							"RYE_HOME":            ryeHome,
							"RYE_NO_AUTO_INSTALL": "1",
						},
					},
					{Run: sync},
				},
			},
			{
				Name: "entrypoint",
				Steps: []Step{
					{Copy: opts.Executable + " " + EntrypointPath},
					{Run: "chmod 0755 " + EntrypointPath},
				},
			},
		},
	}
}

// Returns read-only bind mounts of the project manifests into the workdir.
//
// At build time the mounts expose the manifests to the dependency sync
// without committing them to a layer. The run orchestrator reuses the same
// set for its manifest-binding mount variant.
func ManifestMounts(in *project.Inputs) []runtime.Mount {
	sources := []string{in.Descriptor, in.Lock, in.DevLock, in.Pin}
	if in.Readme != "" {
		sources = append(sources, in.Readme)
	}

	mounts := make([]runtime.Mount, 0, len(sources))
	for _, src := range sources {
		mounts = append(mounts, runtime.Mount{
			Source:   src,
			Target:   filepath.Join(WorkDir, filepath.Base(src)),
			ReadOnly: true,
		})
	}
	return mounts
}

// Returns the runtime configuration baked into the exported image.
//
// The package manager's shims lead PATH so the synced interpreter and
// console scripts resolve first.
func DefaultImageConfig() runtime.ImageConfig {
	return runtime.ImageConfig{
		Entrypoint: []string{EntrypointPath, "init"},
		Cmd:        DefaultCommand,
		WorkingDir: WorkDir,
		Env: []string{
			"PATH=" + ryeHome + "/shims:/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin",
			"RYE_NO_AUTO_INSTALL=1",
			"PYTHONUNBUFFERED=1",
		},
	}
}
