package transactions

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]TransactionWithCategory, int64, error)
	GetTransaction(ctx context.Context, userID, transactionID string) (*TransactionWithCategory, error)
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error)
	ListCategories(ctx context.Context, userID string) ([]Category, error)
	GetCategory(ctx context.Context, userID, categoryID string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) (bool, error)
	TypeTotals(ctx context.Context, userID string, from, to time.Time) (TypeTotals, error)
	CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]CategoryAmount, error)
}
