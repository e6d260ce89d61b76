package store

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrRollback            = errors.New("rollback failed")
	ErrUnknownDriver       = errors.New("unknown database driver")
)
