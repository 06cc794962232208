package goals

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxGoalNameLength = 200

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListGoals(ctx context.Context, userID string) ([]SavingsGoal, error) {
	items, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []SavingsGoal{}
	}
	return items, nil
}

func (s *Service) GetGoal(ctx context.Context, userID, goalID string) (*SavingsGoal, error) {
	if !isUUID(goalID) {
		return nil, ErrGoalNotFound
	}
	return s.repo.GetGoal(ctx, userID, goalID)
}

func (s *Service) CreateGoal(ctx context.Context, input GoalInput) (*SavingsGoal, error) {
	input, err := validate(input)
	if err != nil {
		return nil, err
	}

	goal := SavingsGoal{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		TargetDate:    input.TargetDate,
		Description:   input.Description,
		IsCompleted:   input.IsCompleted,
	}
	if err := s.repo.CreateGoal(ctx, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *Service) UpdateGoal(ctx context.Context, goalID string, input GoalInput) (*SavingsGoal, error) {
	goal, err := s.GetGoal(ctx, input.UserID, goalID)
	if err != nil {
		return nil, err
	}
	input, err = validate(input)
	if err != nil {
		return nil, err
	}

	goal.Name = input.Name
	goal.TargetAmount = input.TargetAmount
	goal.CurrentAmount = input.CurrentAmount
	goal.TargetDate = input.TargetDate
	goal.Description = input.Description
	goal.IsCompleted = input.IsCompleted
	if err := s.repo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if !isUUID(goalID) {
		return ErrGoalNotFound
	}
	deleted, err := s.repo.DeleteGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

// AddFunds adds amount to the goal's balance and marks it completed once the
// target is reached. A completed goal stays completed.
func (s *Service) AddFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*SavingsGoal, error) {
	if !isUUID(goalID) {
		return nil, ErrGoalNotFound
	}

	var updated *SavingsGoal
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		goal, err := tx.GetGoalForUpdate(ctx, userID, goalID)
		if err != nil {
			return err
		}
		goal.CurrentAmount = goal.CurrentAmount.Add(amount).Round(2)
		if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
			goal.IsCompleted = true
		}
		if err := tx.UpdateGoal(ctx, goal); err != nil {
			return err
		}
		updated = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func validate(input GoalInput) (GoalInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, invalid("name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxGoalNameLength {
		return input, invalid("name must be at most 200 characters")
	}
	if input.TargetAmount.IsNegative() {
		return input, invalid("target_amount must be >= 0")
	}
	if input.TargetDate.IsZero() {
		return input, invalid("target_date is required")
	}
	input.TargetAmount = input.TargetAmount.Round(2)
	input.CurrentAmount = input.CurrentAmount.Round(2)
	input.Description = strings.TrimSpace(input.Description)
	return input, nil
}

func isUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
