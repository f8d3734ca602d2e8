package entity

import "errors"

// Domain errors for accounts and example entities.
var (
	ErrInvalidUsername       = errors.New("invalid username")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidExampleID      = errors.New("invalid example ID")
	ErrInvalidExampleNewWord = errors.New("invalid example new word")
	ErrInvalidExampleContent = errors.New("invalid example content")
	ErrExampleNotFound       = errors.New("example not found")
	ErrNotAuthenticated      = errors.New("not authenticated")
)
