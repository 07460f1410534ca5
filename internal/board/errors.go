package board

import (
	"errors"
	"fmt"
)

// Write requests fail with one of these; everything else coming out of the
// service is a backing-store error and surfaces as-is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbiddenContent = errors.New("forbidden content")
	ErrRateLimited      = errors.New("rate limited")
	ErrNotFound         = errors.New("not found")
	ErrWrongPassword    = errors.New("wrong password")
)

// Field-level variants of ErrInvalidInput for operations whose user-facing
// messages name the missing field. errors.Is(err, ErrInvalidInput) still
// matches both.
var (
	ErrPasswordRequired = fmt.Errorf("%w: password", ErrInvalidInput)
	ErrContentRequired  = fmt.Errorf("%w: content", ErrInvalidInput)
)
