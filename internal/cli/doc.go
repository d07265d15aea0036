// Package cli parses flags and dispatches the stevedore subcommands.
//
// The binary serves two roles through one command tree. On the host, build
// provisions the project image, run and shell launch workload containers,
// and clean removes the image and its exported archive. Inside a container,
// the hidden init subcommand is the image's
// entrypoint: it reconciles the workload account to the invoking host user
// and hands off to the workload.
//
// Global flags:
//
//	-q, --quiet        Suppress informational output.
//	-d, --debug        Enable debug output.
//	-C, --root         Project root directory.
//	    --containerd   Containerd socket address.
//	    --namespace    Containerd namespace.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level before the
// subcommand runs.
package cli
