package run

import "errors"

var (
	ErrNoImage = errors.New("image not built")
	ErrEnvFile = errors.New("invalid env file")
)
