package errors

import "errors"

var (
	ErrNotFound = errors.New("space not found")

	ErrDuplicateID = errors.New("space id already exists")
)
