// Package runtime manages containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and provides image pulls,
// archive import, and container creation. Base images are pulled from a
// registry and unpacked for the target platform; built images travel as
// OCI archives that are imported under deterministic tags.
//
// Two kinds of containers exist. Build containers ([Runtime.StartBuild])
// run a long-lived idle task so that build steps can be executed against
// them one at a time; bind mounts supplied at creation expose manifest
// files during the build without entering any committed layer. Workload
// containers ([Runtime.Run]) run a single foreground process with the
// caller's standard streams attached and are removed when the process
// exits.
//
// Example build usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "stevedore")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.StartBuild(ctx, baseImage, "app-build", platform, mounts)
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "apt-get install -y curl gosu", nil, "")
//	if err != nil {
//	    return err
//	}
//
//	if err := ctr.Export(ctx, "output", cfg); err != nil {
//	    return err
//	}
package runtime
