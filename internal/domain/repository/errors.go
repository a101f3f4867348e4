package repository

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrVideoNotFound = errors.New("video not found")
	ErrEmailExists   = errors.New("email already exists")
)
