package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrNotDeleted         = errors.New("record is not soft-deleted")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAdminExists        = errors.New("admin already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotFound       = errors.New("role not found")
	ErrNoRole             = errors.New("user has no role")
)
