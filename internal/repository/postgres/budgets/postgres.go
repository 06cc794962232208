package budgets

import (
	"context"

	domain "smartfinance-go/internal/domain/budgets"

	"gorm.io/gorm"
)

// Spent is the sum of the owner's expenses in the budget category within the
// budget's inclusive date range.
const usageSelect = `budgets.*, categories.name AS category_name,
	COALESCE((
		SELECT SUM(t.amount) FROM transactions t
		WHERE t.user_id = budgets.user_id
			AND t.category_id = budgets.category_id
			AND t.type = 'expense'
			AND t.date BETWEEN budgets.start_date AND budgets.end_date
	), 0) AS spent_amount`

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) usage(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("budgets").
		Select(usageSelect).
		Joins("JOIN categories ON categories.id = budgets.category_id")
}

func (r *PostgresRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Usage, error) {
	var items []domain.Usage
	if err := r.usage(ctx).
		Where("budgets.user_id = ?", userID).
		Order("budgets.created_at desc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Usage, error) {
	var items []domain.Usage
	if err := r.usage(ctx).
		Where("budgets.user_id = ? AND budgets.id = ?", userID, budgetID).
		Limit(1).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrBudgetNotFound
	}
	return &items[0], nil
}

func (r *PostgresRepository) CreateBudget(ctx context.Context, budget *domain.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *PostgresRepository) UpdateBudget(ctx context.Context, budget *domain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&domain.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"category_id": budget.CategoryID,
			"amount":      budget.Amount,
			"period":      budget.Period,
			"start_date":  budget.StartDate,
			"end_date":    budget.EndDate,
		}).Error
}

func (r *PostgresRepository) DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Budget{}, "user_id = ? AND id = ?", userID, budgetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CategoryVisible(ctx context.Context, userID, categoryID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("categories").
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
