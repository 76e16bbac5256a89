package repository

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyCompleted = errors.New("order already completed")
	ErrDuplicateUser    = errors.New("user already exists")
)
