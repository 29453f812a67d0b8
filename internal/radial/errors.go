package radial

import "errors"

// Configuration errors returned by NewRing and NewBoard.
var (
	ErrEmptyKeys       = errors.New("ring has no default keys")
	ErrInvalidRadius   = errors.New("invalid ring radius")
	ErrInvalidDebounce = errors.New("debounce depth must be >= 1")
	ErrNoRings         = errors.New("board has no rings")
)
