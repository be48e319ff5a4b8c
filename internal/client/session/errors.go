package session

import "errors"

// ErrInvalidToken is returned when a raw token cannot be structurally
// parsed or has already expired.
var ErrInvalidToken = errors.New("invalid token")
