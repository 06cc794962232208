package goals

import (
	"context"
	"errors"

	domain "smartfinance-go/internal/domain/goals"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	var items []domain.SavingsGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetGoal(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	return r.first(r.db.WithContext(ctx), userID, goalID)
}

func (r *PostgresRepository) GetGoalForUpdate(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, goalID)
}

func (r *PostgresRepository) first(query *gorm.DB, userID, goalID string) (*domain.SavingsGoal, error) {
	var goal domain.SavingsGoal
	if err := query.
		Where("user_id = ? AND id = ?", userID, goalID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresRepository) CreateGoal(ctx context.Context, goal *domain.SavingsGoal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *PostgresRepository) UpdateGoal(ctx context.Context, goal *domain.SavingsGoal) error {
	return r.db.WithContext(ctx).
		Model(&domain.SavingsGoal{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Updates(map[string]interface{}{
			"name":           goal.Name,
			"target_amount":  goal.TargetAmount,
			"current_amount": goal.CurrentAmount,
			"target_date":    goal.TargetDate,
			"description":    goal.Description,
			"is_completed":   goal.IsCompleted,
		}).Error
}

func (r *PostgresRepository) DeleteGoal(ctx context.Context, userID, goalID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.SavingsGoal{}, "user_id = ? AND id = ?", userID, goalID)
	return result.RowsAffected > 0, result.Error
}
