// Reconciles the numeric identity of the container's unprivileged account
// with the identity of the host user who launched the container.
//
// The entrypoint runs as PID 1 with the host identity supplied through the
// LOCAL_UID and LOCAL_GID environment variables. Reconciliation is split
// into three separable steps:
//
//   - [FromEnv] parses the variables into a typed [Host]. Absent or
//     malformed values refuse startup; id 0 is always refused.
//   - [Reconcile] compares the target identity against the parsed account
//     database and produces a [Plan]: which ids to change and which paths
//     to re-own. It is pure and reports id collisions with existing
//     accounts as distinct errors instead of reassigning.
//   - [Apply] performs the side effects: the passwd and group records are
//     rewritten in place and filesystem objects still owned by the
//     placeholder ids are re-owned.
//
// Re-running the pipeline with the same identity yields an empty plan, so
// the adjustment is idempotent. [Transition] then replaces the process
// image with the privilege-transition tool, executing the workload as the
// adjusted account. The workload never runs as root.
package identity
