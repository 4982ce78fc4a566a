package models

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrDuplicateReview = errors.New("a review from this user already exists for this mess")
)
