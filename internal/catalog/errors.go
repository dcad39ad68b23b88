package catalog

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrInvalidID  = errors.New("invalid product id")
	ErrNotFound   = errors.New("product not found")
)

const (
	OpCreate   = "create"
	OpList     = "list"
	OpFeatured = "featured"
	OpGet      = "get"
	OpUpdate   = "update"
	OpDelete   = "delete"
)

// OpError reports a product store failure during Op.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "catalog " + e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

// ValidationError explains which input was rejected. It matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
