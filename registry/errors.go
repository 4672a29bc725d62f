package registry

import "errors"

// Sentinel errors returned by the engine. Handlers translate them into
// stable HTTP codes with errors.Is; anything else is an internal failure.
var (
	ErrNotFound         = errors.New("letter not found")
	ErrForbidden        = errors.New("not allowed for this letter")
	ErrMissingIndex     = errors.New("an index must be selected before registration")
	ErrMissingRecipient = errors.New("a recipient is required before registration")
	ErrMissingSubject   = errors.New("a subject is required before registration")
	ErrInvalidDate      = errors.New("invalid letter date")
	ErrInvalidState     = errors.New("letter status does not allow this operation")
)
