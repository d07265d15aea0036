// Resolves the build inputs of a Python project: the interpreter version
// pin, the project descriptor, and the dependency lock manifests.
//
// All inputs are read once from the project root and never mutated. The pin
// selects the base image for the build; the descriptor and lock files are
// bind-mounted into the build container during dependency sync. A fidelity
// check catches descriptors that declare dependencies absent from the
// production lock file before any container work starts, mirroring the
// no-relock policy of the sync step itself.
//
// The fingerprint over all inputs yields a deterministic image tag, so two
// builds from identical inputs address the same image.
package project
