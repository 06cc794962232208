package insights

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func record(kind TransactionType, amount string, category string, date string) Record {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return Record{
		Amount:   decimal.RequireFromString(amount),
		Type:     kind,
		Category: category,
		Date:     parsed,
	}
}

func incomes(n int, date string) []Record {
	items := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, record(TypeIncome, "1000", "Salary", date))
	}
	return items
}

func TestPredictNextMonthExpensesInsufficientData(t *testing.T) {
	engine := NewEngine()
	records := incomes(9, "2026-01-01")

	result := engine.PredictNextMonthExpenses(records)
	if result.Prediction != 0 || result.Confidence != ConfidenceLow {
		t.Fatalf("expected 0/low, got %v/%s", result.Prediction, result.Confidence)
	}
	if result.Message != "Insufficient data for prediction" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Score != nil || result.HistoricalData != nil {
		t.Fatalf("expected no score or history, got %+v", result)
	}
}

func TestPredictNextMonthExpensesInsufficientExpenses(t *testing.T) {
	engine := NewEngine()
	records := incomes(6, "2026-01-01")
	for i := 0; i < 4; i++ {
		records = append(records, record(TypeExpense, "10", "Food", "2026-01-05"))
	}

	result := engine.PredictNextMonthExpenses(records)
	if result.Prediction != 0 || result.Confidence != ConfidenceLow {
		t.Fatalf("expected 0/low, got %v/%s", result.Prediction, result.Confidence)
	}
	if result.Message != "Insufficient expense data" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestPredictNextMonthExpensesHistoricalAverage(t *testing.T) {
	engine := NewEngine()
	records := incomes(5, "2026-01-01")
	records = append(records,
		record(TypeExpense, "50", "Food", "2026-01-03"),
		record(TypeExpense, "50", "Food", "2026-01-20"),
		record(TypeExpense, "100", "Rent", "2026-02-01"),
		record(TypeExpense, "100", "Rent", "2026-02-10"),
		record(TypeExpense, "100", "Rent", "2026-02-28"),
	)

	result := engine.PredictNextMonthExpenses(records)
	if result.Prediction != 200 {
		t.Fatalf("expected mean 200, got %v", result.Prediction)
	}
	if result.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %s", result.Confidence)
	}
	if result.Message != "Prediction based on historical average" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Score != nil {
		t.Fatalf("expected no score for average, got %v", *result.Score)
	}
}

func TestPredictNextMonthExpensesLinearTrend(t *testing.T) {
	engine := NewEngine()
	// Shuffled on purpose: grouping must not depend on input order.
	records := []Record{
		record(TypeExpense, "100", "Rent", "2026-03-02"),
		record(TypeIncome, "1000", "Salary", "2026-01-01"),
		record(TypeExpense, "50", "Food", "2026-01-10"),
		record(TypeExpense, "100", "Rent", "2026-02-02"),
		record(TypeExpense, "100", "Rent", "2026-03-12"),
		record(TypeIncome, "1000", "Salary", "2026-02-01"),
		record(TypeExpense, "50", "Food", "2026-01-20"),
		record(TypeExpense, "100", "Rent", "2026-02-20"),
		record(TypeExpense, "100", "Rent", "2026-03-25"),
		record(TypeIncome, "1000", "Salary", "2026-03-01"),
	}

	result := engine.PredictNextMonthExpenses(records)
	if math.Abs(result.Prediction-400) > 1e-9 {
		t.Fatalf("expected prediction 400, got %v", result.Prediction)
	}
	if result.Score == nil || math.Abs(*result.Score-1) > 1e-9 {
		t.Fatalf("expected R² 1, got %v", result.Score)
	}
	if result.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", result.Confidence)
	}
	if result.Message != "" {
		t.Fatalf("expected no message for a fitted forecast, got %q", result.Message)
	}

	want := []MonthlyAmount{
		{Month: "2026-01", Amount: 100},
		{Month: "2026-02", Amount: 200},
		{Month: "2026-03", Amount: 300},
	}
	if !reflect.DeepEqual(result.HistoricalData, want) {
		t.Fatalf("unexpected history %+v", result.HistoricalData)
	}
}

func TestPredictNextMonthExpensesFlatSeriesHasZeroScore(t *testing.T) {
	engine := NewEngine()
	records := incomes(4, "2026-01-01")
	for _, date := range []string{"2026-01-05", "2026-01-15", "2026-02-05", "2026-02-15", "2026-03-05", "2026-03-15"} {
		records = append(records, record(TypeExpense, "50", "Food", date))
	}

	result := engine.PredictNextMonthExpenses(records)
	if result.Prediction != 100 {
		t.Fatalf("expected flat prediction 100, got %v", result.Prediction)
	}
	if result.Score == nil || *result.Score != 0 {
		t.Fatalf("expected score 0 for constant series, got %v", result.Score)
	}
	if result.Confidence != ConfidenceLow {
		t.Fatalf("expected low confidence, got %s", result.Confidence)
	}
}

func TestPredictNextMonthExpensesClampsNegative(t *testing.T) {
	engine := NewEngine()
	records := incomes(5, "2026-01-01")
	records = append(records,
		record(TypeExpense, "150", "Rent", "2026-01-02"),
		record(TypeExpense, "150", "Rent", "2026-01-03"),
		record(TypeExpense, "60", "Food", "2026-02-02"),
		record(TypeExpense, "40", "Food", "2026-02-03"),
		record(TypeExpense, "10", "Food", "2026-03-02"),
	)

	result := engine.PredictNextMonthExpenses(records)
	if result.Prediction != 0 {
		t.Fatalf("expected clamped prediction 0, got %v", result.Prediction)
	}
	if result.Score == nil {
		t.Fatalf("expected a score for fitted forecast")
	}
}

func TestMonthlyTotalsIndexesChronologically(t *testing.T) {
	records := []Record{
		record(TypeExpense, "1.10", "Food", "2026-02-01"),
		record(TypeExpense, "2.20", "Food", "2025-12-31"),
		record(TypeExpense, "0.10", "Food", "2026-02-27"),
		record(TypeExpense, "0.20", "Food", "2026-02-28"),
	}

	months := MonthlyTotals(records)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].YearMonth != "2025-12" || months[0].MonthIndex != 0 {
		t.Fatalf("unexpected first month %+v", months[0])
	}
	if months[1].YearMonth != "2026-02" || months[1].MonthIndex != 1 {
		t.Fatalf("unexpected second month %+v", months[1])
	}
	if !months[1].TotalAmount.Equal(decimal.RequireFromString("1.40")) {
		t.Fatalf("expected exact decimal sum 1.40, got %s", months[1].TotalAmount)
	}
}

func TestPredictNextMonthExpensesIsIdempotent(t *testing.T) {
	engine := NewEngine()
	records := incomes(5, "2026-01-01")
	records = append(records,
		record(TypeExpense, "120", "Rent", "2026-01-02"),
		record(TypeExpense, "80", "Food", "2026-02-02"),
		record(TypeExpense, "95", "Food", "2026-03-02"),
		record(TypeExpense, "130", "Food", "2026-04-02"),
		record(TypeExpense, "40", "Food", "2026-04-09"),
	)
	snapshot := append([]Record(nil), records...)

	first := engine.PredictNextMonthExpenses(records)
	second := engine.PredictNextMonthExpenses(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if !reflect.DeepEqual(records, snapshot) {
		t.Fatalf("input records were mutated")
	}
}

func TestConfidenceFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Confidence
	}{
		{0.95, ConfidenceHigh},
		{0.7, ConfidenceMedium},
		{0.41, ConfidenceMedium},
		{0.4, ConfidenceLow},
		{-2, ConfidenceLow},
	}
	for _, tt := range tests {
		if got := confidenceFromScore(tt.score); got != tt.want {
			t.Fatalf("confidenceFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
