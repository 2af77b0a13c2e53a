package formspec

import "errors"

var (
	ErrInvalidSpec     = errors.New("invalid form spec")
	ErrUnknownKind     = errors.New("unknown rule kind")
	ErrUnknownWidget   = errors.New("unknown widget type")
	ErrUnknownLookup   = errors.New("unknown lookup")
	ErrLookupNotWired  = errors.New("lookup backend is not configured")
	ErrDuplicateField  = errors.New("duplicate field name")
	ErrInvalidSanitize = errors.New("invalid sanitize pipeline")
)
