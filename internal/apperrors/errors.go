package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("action forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrImmutablePeriod indicates a write targeting a ledger date at or before the
// labourer's latest settlement cut-off.
var ErrImmutablePeriod = errors.New("period is settled and immutable")

// ErrPreconditionFailed indicates that an operation's guarded precondition did not hold.
var ErrPreconditionFailed = errors.New("precondition failed")
