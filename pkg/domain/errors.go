package domain

import "errors"

// ErrValidation is returned when input fails shape or range validation
// (negative sale price, percent outside [0,100], missing required fields).
// User-correctable; the message is surfaced verbatim.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when a referenced transaction or payout does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyApproved is returned when approving a transaction that is already
// approved, including when a concurrent approval wins the payout-creation race.
var ErrAlreadyApproved = errors.New("transaction already approved")

// ErrInvalidState is returned when a payout lifecycle precondition is
// violated, e.g. scheduling a payout that is not ready or settling one that
// is not scheduled.
var ErrInvalidState = errors.New("invalid payout state")

// ErrConflict is returned when a concurrent write race is lost on an
// optimistic status update.
var ErrConflict = errors.New("concurrent update conflict")

// ErrInvalidDate is returned when a scheduled date fails to parse or lies in
// the past in the business time zone.
var ErrInvalidDate = errors.New("invalid scheduled date")

// ErrPersistence is returned when the underlying store is unavailable or
// timed out. Retryable by the caller; the core never retries.
var ErrPersistence = errors.New("persistence failure")
