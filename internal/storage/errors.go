package storage

import "errors"

var (
	// ErrNotFound replaces sql.ErrNoRows / mongo.ErrNoDocuments.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate: entity already exists")
)
