package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

// Engine computes forecasts, insights and category guesses over an in-memory
// slice of records. It holds no state besides its clock, so one instance can
// serve concurrent callers.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

func (e *Engine) today() time.Time {
	return calendarDate(e.now())
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func expenses(records []Record) []Record {
	result := make([]Record, 0, len(records))
	for _, record := range records {
		if record.Type == TypeExpense {
			result = append(result, record)
		}
	}
	return result
}

func sumAmounts(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.Amount)
	}
	return total
}

func categoryName(record Record) string {
	if record.Category == "" {
		return UncategorizedCategory
	}
	return record.Category
}

func toFloat(value decimal.Decimal) float64 {
	f, _ := value.Float64()
	return f
}

func floatPtr(value float64) *float64 {
	return &value
}
