package domain

import "errors"

// ErrValidation is the base of every client-input failure (missing
// required fields, out-of-range discount, bad quantity). Layers wrap
// it with detail; the HTTP layer matches the family with errors.Is to
// pick a 4xx status.
var ErrValidation = errors.New("validation failed")
