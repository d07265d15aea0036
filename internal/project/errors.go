package project

import "errors"

var (
	ErrMissingPin        = errors.New("missing version pin")
	ErrInvalidPin        = errors.New("invalid version pin")
	ErrMissingManifest   = errors.New("missing manifest")
	ErrInvalidDescriptor = errors.New("invalid project descriptor")
	ErrLockMismatch      = errors.New("lock files inconsistent with project descriptor")
)
