package app

import "errors"

// ErrNotFound is returned by repositories when no task carries the requested id.
var ErrNotFound = errors.New("not found")
