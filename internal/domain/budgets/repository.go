package budgets

import "context"

type Repository interface {
	ListBudgets(ctx context.Context, userID string) ([]Usage, error)
	GetBudget(ctx context.Context, userID, budgetID string) (*Usage, error)
	CreateBudget(ctx context.Context, budget *Budget) error
	UpdateBudget(ctx context.Context, budget *Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error)
	// CategoryVisible reports whether the user may budget against the category.
	CategoryVisible(ctx context.Context, userID, categoryID string) (bool, error)
}
