package account

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

type Profile struct {
	UserID        string          `gorm:"type:uuid;primaryKey"`
	Email         *string         `gorm:"type:text"`
	Username      *string         `gorm:"type:text"`
	MonthlyIncome decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Currency      string          `gorm:"type:char(3);not null;default:USD"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

// UpdateProfileInput applies only the non-nil fields.
type UpdateProfileInput struct {
	UserID        string
	MonthlyIncome *decimal.Decimal
	Currency      *string
}
