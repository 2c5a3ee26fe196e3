// File: internal/orchestrator/errors.go
package orchestrator

import "errors"

// ErrInvalidRequest is returned when an ExecuteSearchRequest fails
// validation.
var ErrInvalidRequest = errors.New("orchestrator: invalid request")

// ErrStoreWriteFailure is returned when creating the session record fails
// on its first attempt and on its one retry, aborting the session. A
// session status update that fails twice is not returned as an error; the
// session is marked FAILED instead.
var ErrStoreWriteFailure = errors.New("orchestrator: store write failure")
