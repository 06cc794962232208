package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

const UncategorizedCategory = "Uncategorized"

// Record is the read-only view of a transaction the engine works on. Amount is
// a non-negative magnitude; the sign is implied by Type.
type Record struct {
	Amount   decimal.Decimal
	Type     TransactionType
	Category string
	Date     time.Time
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type MonthlyAggregate struct {
	YearMonth   string
	TotalAmount decimal.Decimal
	MonthIndex  int
}

type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type ForecastResult struct {
	Prediction     float64         `json:"prediction"`
	Confidence     Confidence      `json:"confidence"`
	Message        string          `json:"message,omitempty"`
	Score          *float64        `json:"score,omitempty"`
	HistoricalData []MonthlyAmount `json:"historical_data,omitempty"`
}

type InsightType string

const (
	InsightCategorySpending InsightType = "category_spending"
	InsightSpendingPattern  InsightType = "spending_pattern"
	InsightTrend            InsightType = "trend"
)

// Insight is a flat tagged variant: Type selects which of the optional fields
// are populated.
type Insight struct {
	Type    InsightType `json:"type"`
	Message string      `json:"message"`

	// category_spending
	Category   string   `json:"category,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`

	// spending_pattern
	Day           string   `json:"day,omitempty"`
	AverageAmount *float64 `json:"average_amount,omitempty"`

	// trend
	ChangePercentage *float64 `json:"change_percentage,omitempty"`
	CurrentAmount    *float64 `json:"current_amount,omitempty"`
	PreviousAmount   *float64 `json:"previous_amount,omitempty"`
}

type InsightsResult struct {
	Insights      []Insight `json:"insights"`
	TotalAnalyzed int       `json:"total_analyzed,omitempty"`
	Message       string    `json:"message,omitempty"`
}

type CategoryPrediction struct {
	PredictedCategory string  `json:"predicted_category"`
	Confidence        float64 `json:"confidence"`
}
