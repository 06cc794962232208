package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	topCategoriesCount    = 3
	minPatternExpenses    = 7
	minTrendRecords       = 30
	trendWindowDays       = 30
	msgNoTransactions     = "No transactions available for analysis"
	directionIncreased    = "increased"
	directionDecreased    = "decreased"
	percentageScaleFactor = 100
)

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SpendingInsights derives category, weekday and 30-day trend statements.
// Items are emitted in that order, each only when its data condition holds.
func (e *Engine) SpendingInsights(records []Record) InsightsResult {
	if len(records) == 0 {
		return InsightsResult{Insights: []Insight{}, Message: msgNoTransactions}
	}

	expenseRecords := expenses(records)
	items := make([]Insight, 0, topCategoriesCount+2)

	items = append(items, categoryInsights(expenseRecords)...)

	if insight, ok := weekdayInsight(expenseRecords); ok {
		items = append(items, insight)
	}

	if insight, ok := trendInsight(records, e.today()); ok {
		items = append(items, insight)
	}

	return InsightsResult{Insights: items, TotalAnalyzed: len(records)}
}

type categoryTotal struct {
	name  string
	total decimal.Decimal
}

func categoryInsights(expenseRecords []Record) []Insight {
	if len(expenseRecords) == 0 {
		return nil
	}

	totals := make([]categoryTotal, 0)
	index := make(map[string]int)
	for _, record := range expenseRecords {
		name := categoryName(record)
		i, ok := index[name]
		if !ok {
			i = len(totals)
			index[name] = i
			totals = append(totals, categoryTotal{name: name})
		}
		totals[i].total = totals[i].total.Add(record.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].total.GreaterThan(totals[j].total)
	})
	if len(totals) > topCategoriesCount {
		totals = totals[:topCategoriesCount]
	}

	overall := sumAmounts(expenseRecords)
	items := make([]Insight, 0, len(totals))
	for _, item := range totals {
		percentage := 0.0
		if overall.IsPositive() {
			percentage = toFloat(item.total.Mul(decimal.NewFromInt(percentageScaleFactor)).Div(overall))
		}
		items = append(items, Insight{
			Type:       InsightCategorySpending,
			Message:    fmt.Sprintf("%s accounts for %.1f%% of your total expenses", item.name, percentage),
			Category:   item.name,
			Amount:     floatPtr(toFloat(item.total)),
			Percentage: floatPtr(percentage),
		})
	}
	return items
}

func weekdayInsight(expenseRecords []Record) (Insight, bool) {
	if len(expenseRecords) <= minPatternExpenses {
		return Insight{}, false
	}

	var sums [7]decimal.Decimal
	var counts [7]int64
	for _, record := range expenseRecords {
		day := mondayIndex(record.Date.Weekday())
		sums[day] = sums[day].Add(record.Amount)
		counts[day]++
	}

	best := -1
	var bestAvg decimal.Decimal
	for day := range weekdayNames {
		if counts[day] == 0 {
			continue
		}
		avg := sums[day].Div(decimal.NewFromInt(counts[day]))
		if best == -1 || avg.GreaterThan(bestAvg) {
			best = day
			bestAvg = avg
		}
	}
	if best == -1 {
		return Insight{}, false
	}

	return Insight{
		Type:          InsightSpendingPattern,
		Message:       fmt.Sprintf("You tend to spend more on %ss", weekdayNames[best]),
		Day:           weekdayNames[best],
		AverageAmount: floatPtr(toFloat(bestAvg)),
	}, true
}

func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

func trendInsight(records []Record, today time.Time) (Insight, bool) {
	if len(records) <= minTrendRecords {
		return Insight{}, false
	}

	recentStart := today.AddDate(0, 0, -trendWindowDays)
	previousStart := today.AddDate(0, 0, -2*trendWindowDays)

	recent, previous := decimal.Zero, decimal.Zero
	for _, record := range records {
		if record.Type != TypeExpense {
			continue
		}
		date := calendarDate(record.Date)
		switch {
		case !date.Before(recentStart):
			recent = recent.Add(record.Amount)
		case !date.Before(previousStart):
			previous = previous.Add(record.Amount)
		}
	}

	if !previous.IsPositive() {
		return Insight{}, false
	}

	change := toFloat(recent.Sub(previous).Mul(decimal.NewFromInt(percentageScaleFactor)).Div(previous))
	direction := directionDecreased
	if change > 0 {
		direction = directionIncreased
	}

	return Insight{
		Type:             InsightTrend,
		Message:          fmt.Sprintf("Your spending has %s by %.1f%% compared to last month", direction, math.Abs(change)),
		ChangePercentage: floatPtr(change),
		CurrentAmount:    floatPtr(toFloat(recent)),
		PreviousAmount:   floatPtr(toFloat(previous)),
	}, true
}
