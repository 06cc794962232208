package budgets

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListBudgets(ctx context.Context, userID string) ([]Usage, error) {
	items, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Usage{}
	}
	for i := range items {
		items[i].PercentageUsed = PercentageUsed(items[i].SpentAmount, items[i].Amount)
	}
	return items, nil
}

func (s *Service) GetBudget(ctx context.Context, userID, budgetID string) (*Usage, error) {
	if !isUUID(budgetID) {
		return nil, ErrBudgetNotFound
	}
	usage, err := s.repo.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	usage.PercentageUsed = PercentageUsed(usage.SpentAmount, usage.Amount)
	return usage, nil
}

func (s *Service) CreateBudget(ctx context.Context, input BudgetInput) (*Usage, error) {
	input, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	budget := Budget{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Period:     input.Period,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	if err := s.repo.CreateBudget(ctx, &budget); err != nil {
		return nil, err
	}

	return s.GetBudget(ctx, input.UserID, budget.ID)
}

func (s *Service) UpdateBudget(ctx context.Context, budgetID string, input BudgetInput) (*Usage, error) {
	current, err := s.GetBudget(ctx, input.UserID, budgetID)
	if err != nil {
		return nil, err
	}
	input, err = s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	budget := current.Budget
	budget.CategoryID = input.CategoryID
	budget.Amount = input.Amount
	budget.Period = input.Period
	budget.StartDate = input.StartDate
	budget.EndDate = input.EndDate
	if err := s.repo.UpdateBudget(ctx, &budget); err != nil {
		return nil, err
	}

	return s.GetBudget(ctx, input.UserID, budgetID)
}

func (s *Service) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if !isUUID(budgetID) {
		return ErrBudgetNotFound
	}
	deleted, err := s.repo.DeleteBudget(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

func (s *Service) validate(ctx context.Context, input BudgetInput) (BudgetInput, error) {
	if !input.Amount.IsPositive() {
		return input, invalid("amount must be positive")
	}
	input.Amount = input.Amount.Round(2)
	if input.Period == "" {
		input.Period = PeriodMonthly
	}
	if !input.Period.Valid() {
		return input, invalid("period must be weekly, monthly or yearly")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return input, invalid("start_date and end_date are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return input, invalid("start_date must be <= end_date")
	}
	if !isUUID(input.CategoryID) {
		return input, ErrCategoryNotFound
	}
	visible, err := s.repo.CategoryVisible(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return input, err
	}
	if !visible {
		return input, ErrCategoryNotFound
	}
	return input, nil
}

// PercentageUsed is spent/amount on a 0-100 scale rounded to 2 places, 0 for a
// non-positive amount.
func PercentageUsed(spent, amount decimal.Decimal) float64 {
	if !amount.IsPositive() {
		return 0
	}
	value, _ := spent.Mul(decimal.NewFromInt(100)).Div(amount).Round(2).Float64()
	return value
}

func isUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
