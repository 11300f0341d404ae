package domain

import "errors"

// ErrNotFound reports a lookup miss across the repositories.
var ErrNotFound = errors.New("not found")
