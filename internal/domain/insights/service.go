package insights

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo   Repository
	engine *Engine
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, engine: NewEngine()}
}

func (s *Service) PredictExpenses(ctx context.Context, userID string) (ForecastResult, error) {
	records, err := s.repo.ListRecords(ctx, userID)
	if err != nil {
		return ForecastResult{}, fmt.Errorf("list records: %w", err)
	}
	return s.engine.PredictNextMonthExpenses(records), nil
}

func (s *Service) SpendingInsights(ctx context.Context, userID string) (InsightsResult, error) {
	records, err := s.repo.ListRecords(ctx, userID)
	if err != nil {
		return InsightsResult{}, fmt.Errorf("list records: %w", err)
	}
	return s.engine.SpendingInsights(records), nil
}

func (s *Service) PredictCategory(amount decimal.Decimal, description string) CategoryPrediction {
	return s.engine.PredictCategory(amount, description)
}
