package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrActorMissing      = errors.New("authenticated actor missing from context")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidDepartment = errors.New("invalid department")
)
