package insights

import (
	"context"

	domain "smartfinance-go/internal/domain/insights"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListRecords projects every transaction of the user onto the analytics record
// shape. Categories the user cannot see, or missing ones, read as Uncategorized.
func (r *PostgresRepository) ListRecords(ctx context.Context, userID string) ([]domain.Record, error) {
	query := `SELECT t.amount AS amount, t.type AS type,
			COALESCE(c.name, ?) AS category, t.date AS date
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id AND (c.user_id = t.user_id OR c.user_id IS NULL)
		WHERE t.user_id = ?
		ORDER BY t.date ASC, t.created_at ASC`

	var records []domain.Record
	if err := r.db.WithContext(ctx).Raw(query, domain.UncategorizedCategory, userID).Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
