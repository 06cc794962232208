package handler

import (
	accountdomain "smartfinance-go/internal/domain/account"
	budgetsdomain "smartfinance-go/internal/domain/budgets"
	goalsdomain "smartfinance-go/internal/domain/goals"
	insightsdomain "smartfinance-go/internal/domain/insights"
	transactionsdomain "smartfinance-go/internal/domain/transactions"
	commonhandler "smartfinance-go/internal/transport/httpserver/handler/common"
	insightshandler "smartfinance-go/internal/transport/httpserver/handler/insights"
	transactionshandler "smartfinance-go/internal/transport/httpserver/handler/transactions"
	"smartfinance-go/pkg/logger"
)

type Handlers struct {
	Common       *commonhandler.Handlers
	Transactions *transactionshandler.Handlers
	Insights     *insightshandler.Handlers
}

type Services struct {
	Accounts     *accountdomain.Service
	Transactions *transactionsdomain.Service
	Budgets      *budgetsdomain.Service
	Goals        *goalsdomain.Service
	Insights     *insightsdomain.Service
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{
		Common:       commonhandler.New(services.Accounts, log),
		Transactions: transactionshandler.New(services.Transactions, services.Budgets, services.Goals, log),
		Insights:     insightshandler.New(services.Insights, log),
	}
}
