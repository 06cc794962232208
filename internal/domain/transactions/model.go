package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

const DefaultCategoryColor = "#3B82F6"

// Category rows with a nil UserID are shared defaults visible to everyone.
type Category struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	UserID    *string         `gorm:"type:uuid;index"`
	Name      string          `gorm:"size:100;not null"`
	Type      TransactionType `gorm:"size:10;not null"`
	Icon      string          `gorm:"size:50;not null"`
	Color     string          `gorm:"size:7;not null"`
	IsDefault bool            `gorm:"not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (c Category) OwnedBy(userID string) bool {
	return !c.IsDefault && c.UserID != nil && *c.UserID == userID
}

type Transaction struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Type        TransactionType `gorm:"size:10;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CategoryID  *string         `gorm:"type:uuid"`
	Description string          `gorm:"not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

type TransactionWithCategory struct {
	Transaction
	CategoryName  *string
	CategoryColor *string
}

type ListFilter struct {
	From       *time.Time
	To         *time.Time
	Type       TransactionType
	CategoryID string
	Limit      int
	Offset     int
}

type CreateTransactionInput struct {
	UserID      string
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  *string
	Description string
	Date        time.Time
}

type UpdateTransactionInput struct {
	ID          string
	UserID      string
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  *string
	Description string
	Date        time.Time
}

type CreateCategoryInput struct {
	UserID string
	Name   string
	Type   TransactionType
	Icon   string
	Color  *string
}

// UpdateCategoryInput applies only the non-nil fields.
type UpdateCategoryInput struct {
	UserID     string
	CategoryID string
	Name       *string
	Type       *TransactionType
	Icon       *string
	Color      *string
}

type TypeTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
	Type     TransactionType `json:"type"`
}

type Summary struct {
	StartDate         time.Time
	EndDate           time.Time
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	Balance           decimal.Decimal
	CategoryBreakdown []CategoryAmount
}
