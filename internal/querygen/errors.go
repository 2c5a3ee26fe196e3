// File: internal/querygen/errors.go
package querygen

import "errors"

// ErrInvalidRequest is returned when a QueryGenerationRequest fails
// validation.
var ErrInvalidRequest = errors.New("querygen: invalid request")

// ErrGenerationFailed is returned only when parsing yields zero queries
// and no fallback is available.
var ErrGenerationFailed = errors.New("querygen: generation failed")
