package common

import (
	"net/http"

	accountdomain "smartfinance-go/internal/domain/account"
	"smartfinance-go/pkg/logger"
)

type Handlers struct {
	Accounts *accountdomain.Service
	log      logger.Logger
}

func New(accounts *accountdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Accounts: accounts,
		log:      log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
