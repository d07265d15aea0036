package identity

import "errors"

var (
	ErrIdentityUnset   = errors.New("host identity not provided")
	ErrIdentityInvalid = errors.New("invalid host identity")
	ErrRootIdentity    = errors.New("root identity refused")
	ErrUnknownAccount  = errors.New("unknown account")
	ErrUIDInUse        = errors.New("uid already in use")
	ErrGIDInUse        = errors.New("gid already in use")
	ErrDatabase        = errors.New("account database error")
	ErrTransition      = errors.New("privilege transition failed")
)
