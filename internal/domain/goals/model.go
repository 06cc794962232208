package goals

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	UserID        string          `gorm:"type:uuid;index;not null"`
	Name          string          `gorm:"size:200;not null"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TargetDate    time.Time       `gorm:"type:date;not null"`
	Description   string          `gorm:"not null"`
	IsCompleted   bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (SavingsGoal) TableName() string {
	return "savings_goals"
}

// ProgressPercentage is current/target on a 0-100 scale rounded to 2 places,
// 0 for a non-positive target.
func (g SavingsGoal) ProgressPercentage() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	value, _ := g.CurrentAmount.Mul(decimal.NewFromInt(100)).Div(g.TargetAmount).Round(2).Float64()
	return value
}

type GoalInput struct {
	UserID        string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Description   string
	IsCompleted   bool
}
