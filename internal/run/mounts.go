package run

import (
	"path/filepath"

	"github.com/harborhq/stevedore/internal/build"
	"github.com/harborhq/stevedore/internal/project"
	"github.com/harborhq/stevedore/internal/runtime"
)

// Returns the bind mount set for a workload run.
//
// The project's src directory is mounted read-write at the workdir so host
// edits are live in the container. With bindManifests, the project manifests
// are additionally bound read-only into the workdir, matching what the
// dependency sync saw at build time.
func mounts(in *project.Inputs, bindManifests bool) []runtime.Mount {
	set := []runtime.Mount{
		{
			Source: filepath.Join(in.Root, "src"),
			Target: filepath.Join(build.WorkDir, "src"),
		},
	}

	if bindManifests {
		set = append(set, build.ManifestMounts(in)...)
	}

	return set
}
