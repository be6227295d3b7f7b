package core

import (
	"errors"
)

var (
	// ErrNotFound is returned both for resources which don't exist and for
	// resources the actor may not read, so unauthorized viewers can't probe
	// for existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned on write paths where the resource exists but
	// the actor lacks rights.
	ErrForbidden = errors.New("access denied")

	ErrCategoryInUse = errors.New("category is still referenced by articles")
	ErrEmptyPassword = errors.New("refusing to set empty password")
	ErrUnknownRole   = errors.New("unknown role name")
)
