package transactions

import (
	"context"
	"errors"
	"time"

	domain "smartfinance-go/internal/domain/transactions"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const visibleCategory = "(categories.user_id = ? OR categories.user_id IS NULL)"

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

func (r *PostgresRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions").
		Select("transactions.*, categories.name AS category_name, categories.color AS category_color").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id")
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.TransactionWithCategory, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Transaction{}).Where("transactions.user_id = ?", userID)
	if filter.From != nil && filter.To != nil {
		query = query.Where("transactions.date BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.Type != "" {
		query = query.Where("transactions.type = ?", filter.Type)
	}
	if filter.CategoryID != "" {
		query = query.Where("transactions.category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Select("transactions.*, categories.name AS category_name, categories.color AS category_color").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Order("transactions.date desc, transactions.created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []domain.TransactionWithCategory
	if err := query.Scan(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.TransactionWithCategory, error) {
	var items []domain.TransactionWithCategory
	if err := r.withCategory(ctx).
		Where("transactions.user_id = ? AND transactions.id = ?", userID, transactionID).
		Limit(1).
		Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return &items[0], nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]interface{}{
			"type":        transaction.Type,
			"amount":      transaction.Amount,
			"category_id": transaction.CategoryID,
			"description": transaction.Description,
			"date":        transaction.Date,
			"updated_at":  transaction.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Transaction{}, "user_id = ? AND id = ?", userID, transactionID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).
		Where(visibleCategory, userID).
		Order("type asc, name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).
		Where("categories.id = ?", categoryID).
		Where(visibleCategory, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"type":  category.Type,
			"icon":  category.Icon,
			"color": category.Color,
		}).Error
	if isUniqueViolation(err) {
		return domain.ErrCategoryNameTaken
	}
	return err
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Category{}, "user_id = ? AND id = ? AND NOT is_default", userID, categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) TypeTotals(ctx context.Context, userID string, from, to time.Time) (domain.TypeTotals, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0) AS income,
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0) AS expense
		FROM transactions
		WHERE user_id = ? AND date BETWEEN ? AND ?`

	var totals domain.TypeTotals
	if err := r.db.WithContext(ctx).Raw(query, userID, from, to).Scan(&totals).Error; err != nil {
		return domain.TypeTotals{}, err
	}
	return totals, nil
}

func (r *PostgresRepository) CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	query := `SELECT c.name AS category, c.color AS color, c.type AS type, SUM(t.amount) AS amount
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.date BETWEEN ? AND ?
			AND (c.user_id = ? OR c.user_id IS NULL)
		GROUP BY c.id, c.name, c.color, c.type
		ORDER BY amount DESC`

	var rows []domain.CategoryAmount
	if err := r.db.WithContext(ctx).Raw(query, userID, from, to, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) EnsureDefaultCategory(ctx context.Context, category *domain.Category) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("user_id IS NULL AND lower(name) = lower(?) AND type = ?", category.Name, category.Type).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
