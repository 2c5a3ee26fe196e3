// File: internal/store/errors.go
package store

import "errors"

// ErrNotFound is returned by lookup methods when no row matches.
var ErrNotFound = errors.New("store: not found")
