package repository

import "errors"

// ErrDuplicate is returned when an insert collides with a unique index, such
// as a document number already taken by a concurrent writer.
var ErrDuplicate = errors.New("duplicate key")
