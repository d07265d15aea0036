// Package run launches workload containers for a provisioned project.
//
// A run captures the invoking user's uid and gid, assembles the bind mount
// set and the container environment, and starts a single foreground
// container from the project's image tag. The container's entrypoint (the
// init subcommand baked in at build time) reconciles the in-container
// account to the captured identity before handing off to the workload. The
// container is removed when the workload exits and its exit code is
// propagated to the caller.
//
// Source code is bind-mounted read-write from the project's src directory,
// so edits on the host are visible in the container without a rebuild. An
// optional dotenv-style file extends the container environment; the identity
// variables always win on conflict.
package run
