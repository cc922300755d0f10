package database

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when adding a row whose key is taken
	ErrAlreadyExists = errors.New("entity already exists")
)
