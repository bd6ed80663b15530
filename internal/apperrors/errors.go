package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that a write collided with an existing resource,
// e.g. a duplicate external id within the same account.
var ErrConflict = errors.New("resource already exists")

// ErrForbidden indicates that a referenced resource belongs to another owner.
// At the API boundary lookups treat this the same as ErrNotFound so the
// existence of other owners' data is never revealed.
var ErrForbidden = errors.New("resource belongs to another owner")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates a storage or infrastructure failure. The core never
// retries; retry policy belongs to the caller.
var ErrInternal = errors.New("internal error")
