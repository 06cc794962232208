package account

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrProfileNotFound = errors.New("profile not found")
)

func invalid(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, message)
}
