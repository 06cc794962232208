package insights

import (
	"encoding/json"
	"net/http"

	commonhandler "smartfinance-go/internal/transport/httpserver/handler/common"
	"smartfinance-go/internal/transport/httpserver/middleware"

	"github.com/shopspring/decimal"
)

type predictCategoryRequest struct {
	Amount      decimal.NullDecimal `json:"amount"`
	Description string              `json:"description"`
}

func (h *Handlers) PredictExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Insights.PredictExpenses(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("insights.predict_expenses: failed", err, "user_id", user.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.log.Debug("insights.predict_expenses: done", "user_id", user.ID, "confidence", result.Confidence)
	commonhandler.WriteJSON(w, http.StatusOK, result)
}

func (h *Handlers) SpendingInsights(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Insights.SpendingInsights(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("insights.spending: failed", err, "user_id", user.ID)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, result)
}

// PredictCategory tolerates unknown fields and a missing amount; only the
// description drives the prediction.
func (h *Handlers) PredictCategory(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		commonhandler.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req predictCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, h.Insights.PredictCategory(req.Amount.Decimal, req.Description))
}
