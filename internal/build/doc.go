// Package build executes provisioning recipes against the container runtime.
//
// A recipe is an ordered sequence of named stages executed inside a single
// build container started from a base image. Steps within a stage are shell
// commands and host-to-container file copies; step state (environment
// variables, working directory, shell) accumulates within a stage and resets
// between stages. The container's combined filesystem changes are committed
// as one layer, exported as an OCI archive, and imported under a
// deterministic tag.
//
// DefaultRecipe produces the standard provisioning pipeline for a Python
// project: auxiliary tools, the unprivileged workload account, the rye
// package manager, the locked dependency set, and the entrypoint binary.
// Project manifests are bind-mounted read-only during the build so they
// never become part of the image.
//
// Container operations are delegated to the runtime package.
//
// Example usage:
//
//	result, err := build.Run(ctx, rt, build.Options{
//	    Recipe: build.DefaultRecipe(inputs, build.RecipeOptions{Executable: self}),
//	    Name:   inputs.Name,
//	    Tag:    tag,
//	    Output: paths.ImageDir(tag),
//	    Root:   inputs.Root,
//	    Config: build.DefaultImageConfig(),
//	})
//	if err != nil {
//	    return err
//	}
package build
