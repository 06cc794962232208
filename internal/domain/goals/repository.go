package goals

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListGoals(ctx context.Context, userID string) ([]SavingsGoal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*SavingsGoal, error)
	// GetGoalForUpdate locks the row until the surrounding transaction ends.
	GetGoalForUpdate(ctx context.Context, userID, goalID string) (*SavingsGoal, error)
	CreateGoal(ctx context.Context, goal *SavingsGoal) error
	UpdateGoal(ctx context.Context, goal *SavingsGoal) error
	DeleteGoal(ctx context.Context, userID, goalID string) (bool, error)
}
