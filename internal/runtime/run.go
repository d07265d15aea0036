package runtime

import (
	"context"
	"io"
	"log/slog"
	"syscall"

	"github.com/containerd/console"
	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/containerd/v2/pkg/cio"
	"github.com/containerd/containerd/v2/pkg/oci"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

// Options for running a workload container in the foreground.
type RunOptions struct {
	Image  string    // Tag of a previously imported image.
	ID     string    // Container ID; a stale container with this ID is replaced.
	Args   []string  // Process arguments; empty runs the image's entrypoint.
	Env    []string  // Extra environment entries merged over the image's env.
	Mounts []Mount   // Bind mounts from the host.
	TTY    bool      // Allocate a terminal for the process.
	Stdin  io.Reader // Standard input; nil leaves stdin disconnected.
	Stdout io.Writer // Standard output; nil discards.
	Stderr io.Writer // Standard error; nil discards.
}

// Runs a workload container in the foreground and returns its exit code.
//
// Unlike build containers, the workload runs the image's configured
// entrypoint (or opts.Args when set) as the primary task and the call blocks
// until the process exits. The container and its snapshot are removed after
// the run. Cancelling the context sends SIGTERM to the task; the exit code
// then reflects the signal.
//
// With TTY, if stdin is the invoking terminal it is placed in raw mode for
// the duration of the run (so the container's pty handles echo and line
// editing) and window size changes are forwarded to the task.
func (rt *Runtime) Run(ctx context.Context, opts RunOptions) (int, error) {
	platform := DefaultPlatform()

	image, err := rt.resolveImage(ctx, opts.Image, platform)
	if err != nil {
		return 0, wrapRuntime(err)
	}

	c := &Container{
		client:   rt.client,
		id:       opts.ID,
		platform: platform,
		mounts:   opts.Mounts,
	}
	c.remove(ctx)

	specOpts := []oci.SpecOpts{
		oci.WithDefaultSpecForPlatform(platform),
		oci.WithImageConfig(image),
		oci.WithHostNamespace(specs.NetworkNamespace),
		oci.WithHostResolvconf,
		oci.WithMounts(mountSpecs(opts.Mounts)),
	}
	if len(opts.Args) > 0 {
		specOpts = append(specOpts, oci.WithProcessArgs(opts.Args...))
	}
	if len(opts.Env) > 0 {
		specOpts = append(specOpts, oci.WithEnv(opts.Env))
	}
	if opts.TTY {
		specOpts = append(specOpts, oci.WithTTY)
	}

	var con console.Console
	if opts.TTY {
		if con = terminalFor(opts.Stdin); con != nil {
			if err := con.SetRaw(); err != nil {
				return 0, wrapRuntime(err)
			}
			defer con.Reset()
		}
	}

	ctr, err := rt.client.NewContainer(ctx, opts.ID,
		containerd.WithImage(image),
		containerd.WithSnapshotter(snapshotter),
		containerd.WithNewSnapshot(opts.ID, image),
		containerd.WithRuntime(ociRuntime, nil),
		containerd.WithNewSpec(specOpts...),
	)
	if err != nil {
		return 0, wrapRuntime(err)
	}
	defer c.Destroy(context.WithoutCancel(ctx))

	ioOpts := []cio.Opt{cio.WithStreams(opts.Stdin, opts.Stdout, opts.Stderr)}
	if opts.TTY {
		ioOpts = append(ioOpts, cio.WithTerminal)
	}

	task, err := ctr.NewTask(ctx, cio.NewCreator(ioOpts...))
	if err != nil {
		return 0, wrapRuntime(err)
	}

	statusC, err := task.Wait(ctx)
	if err != nil {
		task.Delete(ctx, containerd.WithProcessKill)
		return 0, wrapRuntime(err)
	}

	if err := task.Start(ctx); err != nil {
		task.Delete(ctx, containerd.WithProcessKill)
		return 0, wrapRuntime(err)
	}

	slog.Debug("workload started", "id", opts.ID, "image", opts.Image)

	// Forward cancellation to the task so Ctrl-C reaches the workload
	// process instead of tearing down the client first.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			task.Kill(context.WithoutCancel(ctx), syscall.SIGTERM)
		case <-stop:
		}
	}()

	if con != nil {
		forwardResize(ctx, task, con, stop)
	}

	exitStatus := <-statusC
	task.Delete(context.WithoutCancel(ctx))

	code, _, err := exitStatus.Result()
	if err != nil {
		return 0, wrapRuntime(err)
	}

	return int(code), nil
}
