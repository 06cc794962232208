package budgets

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrCategoryNotFound = errors.New("category not found")
)

func invalid(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, message)
}
