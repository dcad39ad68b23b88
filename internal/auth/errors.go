package auth

import "errors"

var (
	ErrValidation         = errors.New("username and password are required")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authorized")
)

const (
	OpRegister = "register"
	OpLogin    = "login"
)

// OpError reports a failure of the user store or the token signer during Op.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "auth " + e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }
