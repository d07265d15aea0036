package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"
	"syscall"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/containerd/v2/core/images"
	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
)

const (

	// Snapshotter used for container filesystems. fuse-overlayfs provides
	// overlay semantics without requiring root privileges (no mount(2)),
	// allowing the tool to run as a regular user.
	snapshotter = "fuse-overlayfs"

	// OCI runtime shim for running containers.
	ociRuntime = "io.containerd.runc.v2"
)

// Manages the containerd client and provides image and container operations.
type Runtime struct {
	client *containerd.Client // Containerd client for managing containers and images.
}

// Creates a runtime connected to the containerd socket at the given address.
//
// The namespace scopes all containerd operations to a single tenant. The
// runtime must be closed when no longer needed.
func New(address, namespace string) (*Runtime, error) {
	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, wrapRuntime(err)
	}
	return &Runtime{client: client}, nil
}

// Closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// Returns the default OCI platform for the host architecture.
func DefaultPlatform() string {
	return "linux/" + goruntime.GOARCH
}

// Pulls an image from its registry and unpacks it for the target platform.
//
// Already-present images are not fetched again; their layers are unpacked
// into the snapshotter if a previous pull was interrupted before unpack.
func (rt *Runtime) Pull(ctx context.Context, ref, platform string) error {
	p, err := platforms.Parse(platform)
	if err != nil {
		return wrapRuntime(err)
	}

	if _, err := rt.client.ImageService().Get(ctx, ref); err == nil {
		if err := rt.unpackImage(ctx, ref, platform); err != nil {
			return wrapRuntime(err)
		}
		slog.Debug("image already present", "ref", ref)
		return nil
	}

	slog.Info("pulling base image", "ref", ref, "platform", platform)

	_, err = rt.client.Pull(ctx, ref,
		containerd.WithPlatformMatcher(platforms.Only(p)),
		containerd.WithPullUnpack,
		containerd.WithPullSnapshotter(snapshotter),
	)
	if err != nil {
		return wrapRuntime(err)
	}

	return nil
}

// Starts a build container from a previously pulled or imported image.
//
// The container runs a long-lived idle task so that subsequent Exec calls
// have a running process to attach to. Bind mounts are applied at creation
// and exist only in the container's mount namespace; they never become part
// of an exported layer. Any stale container with the same ID is removed
// first.
func (rt *Runtime) StartBuild(ctx context.Context, ref, id, platform string, mounts []Mount) (*Container, error) {
	c := &Container{
		client:   rt.client,
		id:       id,
		platform: platform,
		mounts:   mounts,
	}

	// Remove any stale container from a previous build with the same ID.
	c.remove(ctx)

	image, err := rt.resolveImage(ctx, ref, platform)
	if err != nil {
		return nil, wrapRuntime(err)
	}

	ctr, err := c.create(ctx, image)
	if err != nil {
		return nil, wrapRuntime(err)
	}

	if err := c.startTask(ctx, ctr); err != nil {
		ctr.Delete(ctx, containerd.WithSnapshotCleanup)
		return nil, wrapRuntime(err)
	}

	slog.Debug("build container started", "id", id, "image", ref)

	return c, nil
}

// Imports an OCI archive, tags it under the given name, and unpacks it for
// the host platform.
func (rt *Runtime) ImportImage(ctx context.Context, path, tag string) error {
	source, err := rt.importArchive(ctx, path)
	if err != nil {
		return wrapRuntime(err)
	}

	if err := rt.tagImage(ctx, source, tag); err != nil {
		return wrapRuntime(err)
	}

	if err := rt.unpackImage(ctx, tag, DefaultPlatform()); err != nil {
		return wrapRuntime(err)
	}

	slog.Debug("image imported", "tag", tag)
	return nil
}

// Whether an image with the given tag exists in the content store.
func (rt *Runtime) HasImage(ctx context.Context, tag string) (bool, error) {
	_, err := rt.client.ImageService().Get(ctx, tag)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return false, nil
		}
		return false, wrapRuntime(err)
	}
	return true, nil
}

// Removes an image and all containers created from it.
//
// Containers are discovered by querying containerd for records whose image
// field matches the tag. Each container's task is killed before the container
// and its snapshot are deleted.
func (rt *Runtime) DestroyImage(ctx context.Context, tag string) error {
	ctrs, err := rt.client.Containers(ctx, fmt.Sprintf("image==%s", tag))
	if err != nil {
		return wrapRuntime(err)
	}

	for _, ctr := range ctrs {
		if task, taskErr := ctr.Task(ctx, nil); taskErr == nil {
			task.Kill(ctx, syscall.SIGKILL)
			task.Delete(ctx, containerd.WithProcessKill)
		}
		if err := ctr.Delete(ctx, containerd.WithSnapshotCleanup); err != nil && !errdefs.IsNotFound(err) {
			return wrapRuntime(err)
		}
	}

	if err := rt.client.ImageService().Delete(ctx, tag); err != nil && !errdefs.IsNotFound(err) {
		return wrapRuntime(err)
	}

	slog.Debug("image destroyed", "tag", tag)
	return nil
}

// Imports an OCI archive into the content store.
//
// The archive must contain exactly one image. Multi-platform archives
// are supported (single OCI index with per-platform manifests).
func (rt *Runtime) importArchive(ctx context.Context, path string) (images.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return images.Image{}, err
	}
	defer fh.Close()

	imported, err := rt.client.Import(ctx, fh)
	if err != nil {
		return images.Image{}, err
	}

	// Import returns one record per image in the archive's index.json.
	// Multiple records would mean multiple unrelated images, which we
	// don't support.
	if len(imported) == 0 {
		return images.Image{}, ErrEmptyArchive
	} else if len(imported) > 1 {
		return images.Image{}, ErrMultipleImages
	}

	return imported[0], nil
}

// Tags an imported image under a deterministic name.
//
// Updates the tag if it already exists. Removes the source record when
// its name differs from the tag to avoid duplicates.
func (rt *Runtime) tagImage(ctx context.Context, source images.Image, tag string) error {
	is := rt.client.ImageService()

	img := images.Image{
		Name:   tag,
		Target: source.Target,
	}

	if _, err := is.Create(ctx, img); err != nil {
		if !errdefs.IsAlreadyExists(err) {
			return err
		}
		if _, err := is.Update(ctx, img, "target"); err != nil {
			return err
		}
	}

	if source.Name != tag {
		_ = is.Delete(ctx, source.Name)
	}

	return nil
}

// Unpacks the image layers for the target platform into the snapshotter.
func (rt *Runtime) unpackImage(ctx context.Context, tag, platform string) error {
	image, err := rt.resolveImage(ctx, tag, platform)
	if err != nil {
		return err
	}

	return image.Unpack(ctx, snapshotter)
}

// Looks up a tagged image and selects the manifest for the given platform.
//
// Multi-platform images contain manifests for multiple architectures. This
// method selects one, so that subsequent operations target the correct
// architecture.
func (rt *Runtime) resolveImage(ctx context.Context, tag, platform string) (containerd.Image, error) {
	p, err := platforms.Parse(platform)
	if err != nil {
		return nil, err
	}

	img, err := rt.client.ImageService().Get(ctx, tag)
	if err != nil {
		return nil, err
	}

	return containerd.NewImageWithPlatform(rt.client, img, platforms.Only(p)), nil
}
