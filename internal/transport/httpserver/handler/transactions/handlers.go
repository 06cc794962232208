package transactions

import (
	budgetsdomain "smartfinance-go/internal/domain/budgets"
	goalsdomain "smartfinance-go/internal/domain/goals"
	transactionsdomain "smartfinance-go/internal/domain/transactions"
	"smartfinance-go/pkg/logger"
)

type Handlers struct {
	Transactions *transactionsdomain.Service
	Budgets      *budgetsdomain.Service
	Goals        *goalsdomain.Service
	log          logger.Logger
}

func New(transactions *transactionsdomain.Service, budgets *budgetsdomain.Service, goals *goalsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Transactions: transactions,
		Budgets:      budgets,
		Goals:        goals,
		log:          log,
	}
}
