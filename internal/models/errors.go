package models

import (
	"errors"
)

var (
	ErrLanguageNotSupported  = errors.New("language not supported")
	ErrNoTransitionAvailable = errors.New("no transition available")
	ErrInvalidProfile        = errors.New("invalid user profile")
)
