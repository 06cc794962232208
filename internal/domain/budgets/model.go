package budgets

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	default:
		return false
	}
}

type Budget struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	UserID     string          `gorm:"type:uuid;index;not null"`
	CategoryID string          `gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Period     Period          `gorm:"size:20;not null"`
	StartDate  time.Time       `gorm:"type:date;not null"`
	EndDate    time.Time       `gorm:"type:date;not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

// Usage is a budget with the expenses booked against it.
type Usage struct {
	Budget
	CategoryName   string
	SpentAmount    decimal.Decimal
	PercentageUsed float64
}

type BudgetInput struct {
	UserID     string
	CategoryID string
	Amount     decimal.Decimal
	Period     Period
	StartDate  time.Time
	EndDate    time.Time
}
