package repository

import "errors"

// ErrNotFound is returned when a requested submission does not exist in the ledger.
var ErrNotFound = errors.New("not found")
