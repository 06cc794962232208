package insights

import (
	insightsdomain "smartfinance-go/internal/domain/insights"
	"smartfinance-go/pkg/logger"
)

type Handlers struct {
	Insights *insightsdomain.Service
	log      logger.Logger
}

func New(insights *insightsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Insights: insights,
		log:      log,
	}
}
