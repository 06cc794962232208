package insights

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	minForecastRecords = 10
	minForecastExpense = 5
	minRegressionMonth = 3
)

const (
	msgInsufficientData    = "Insufficient data for prediction"
	msgInsufficientExpense = "Insufficient expense data"
	msgHistoricalAverage   = "Prediction based on historical average"
)

// PredictNextMonthExpenses fits a least-squares line through monthly expense
// totals and extrapolates one month ahead.
func (e *Engine) PredictNextMonthExpenses(records []Record) ForecastResult {
	if len(records) < minForecastRecords {
		return ForecastResult{Prediction: 0, Confidence: ConfidenceLow, Message: msgInsufficientData}
	}

	expenseRecords := expenses(records)
	if len(expenseRecords) < minForecastExpense {
		return ForecastResult{Prediction: 0, Confidence: ConfidenceLow, Message: msgInsufficientExpense}
	}

	months := MonthlyTotals(expenseRecords)
	if len(months) < minRegressionMonth {
		total := decimal.Zero
		for _, month := range months {
			total = total.Add(month.TotalAmount)
		}
		mean := total.Div(decimal.NewFromInt(int64(len(months))))
		return ForecastResult{
			Prediction: toFloat(mean),
			Confidence: ConfidenceMedium,
			Message:    msgHistoricalAverage,
		}
	}

	xs := make([]float64, len(months))
	ys := make([]float64, len(months))
	history := make([]MonthlyAmount, len(months))
	for i, month := range months {
		xs[i] = float64(month.MonthIndex)
		ys[i] = toFloat(month.TotalAmount)
		history[i] = MonthlyAmount{Month: month.YearMonth, Amount: ys[i]}
	}

	fit := fitLine(xs, ys)
	prediction := fit.predict(float64(len(months)))
	if prediction < 0 {
		prediction = 0
	}
	score := fit.r2(xs, ys)

	return ForecastResult{
		Prediction:     prediction,
		Confidence:     confidenceFromScore(score),
		Score:          floatPtr(score),
		HistoricalData: history,
	}
}

// MonthlyTotals groups records by "YYYY-MM", sums them and numbers the months
// in ascending key order starting at 0. Callers filter by type beforehand.
func MonthlyTotals(records []Record) []MonthlyAggregate {
	sums := make(map[string]decimal.Decimal)
	for _, record := range records {
		key := record.Date.Format("2006-01")
		sums[key] = sums[key].Add(record.Amount)
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]MonthlyAggregate, len(keys))
	for i, key := range keys {
		result[i] = MonthlyAggregate{YearMonth: key, TotalAmount: sums[key], MonthIndex: i}
	}
	return result
}

func confidenceFromScore(score float64) Confidence {
	switch {
	case score > 0.7:
		return ConfidenceHigh
	case score > 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

type linearFit struct {
	intercept float64
	slope     float64
}

// fitLine is ordinary least squares for a single feature. A zero spread in x
// yields a flat line through the mean.
func fitLine(xs, ys []float64) linearFit {
	n := float64(len(xs))
	if n == 0 {
		return linearFit{}
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return linearFit{intercept: meanY}
	}

	slope := sxy / sxx
	return linearFit{intercept: meanY - slope*meanX, slope: slope}
}

func (f linearFit) predict(x float64) float64 {
	return f.intercept + f.slope*x
}

// r2 is the coefficient of determination on the training points. Constant
// targets make it undefined; that case reports 0.
func (f linearFit) r2(xs, ys []float64) float64 {
	if len(ys) == 0 {
		return 0
	}

	var meanY float64
	for _, y := range ys {
		meanY += y
	}
	meanY /= float64(len(ys))

	var ssRes, ssTot float64
	for i := range ys {
		residual := ys[i] - f.predict(xs[i])
		ssRes += residual * residual
		deviation := ys[i] - meanY
		ssTot += deviation * deviation
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
