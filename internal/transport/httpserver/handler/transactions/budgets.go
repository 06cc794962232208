package transactions

import (
	"errors"
	"net/http"
	"time"

	budgetsdomain "smartfinance-go/internal/domain/budgets"

	"github.com/shopspring/decimal"
)

type budgetRequest struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

type budgetResponse struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	CategoryName   string    `json:"category_name"`
	Amount         string    `json:"amount"`
	SpentAmount    float64   `json:"spent_amount"`
	PercentageUsed float64   `json:"percentage_used"`
	Period         string    `json:"period"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	items, err := h.Budgets.ListBudgets(r.Context(), userID)
	if err != nil {
		h.writeBudgetsError(w, "budgets.list", err, userID)
		return
	}

	response := make([]budgetResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toBudgetResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	item, err := h.Budgets.GetBudget(r.Context(), userID, budgetID)
	if err != nil {
		h.writeBudgetsError(w, "budgets.get", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(*item))
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	input, ok := toBudgetInput(w, userID, req)
	if !ok {
		return
	}

	created, err := h.Budgets.CreateBudget(r.Context(), input)
	if err != nil {
		h.writeBudgetsError(w, "budgets.create", err, userID)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(*created))
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	budgetID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	input, ok := toBudgetInput(w, userID, req)
	if !ok {
		return
	}

	updated, err := h.Budgets.UpdateBudget(r.Context(), budgetID, input)
	if err != nil {
		h.writeBudgetsError(w, "budgets.update", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(*updated))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.Budgets.DeleteBudget(r.Context(), userID, budgetID); err != nil {
		h.writeBudgetsError(w, "budgets.delete", err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toBudgetInput(w http.ResponseWriter, userID string, req budgetRequest) (budgetsdomain.BudgetInput, bool) {
	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return budgetsdomain.BudgetInput{}, false
	}
	endDate, err := parseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return budgetsdomain.BudgetInput{}, false
	}

	return budgetsdomain.BudgetInput{
		UserID:     userID,
		CategoryID: req.Category,
		Amount:     req.Amount,
		Period:     budgetsdomain.Period(req.Period),
		StartDate:  startDate,
		EndDate:    endDate,
	}, true
}

func (h *Handlers) writeBudgetsError(w http.ResponseWriter, op string, err error, userID string) {
	switch {
	case errors.Is(err, budgetsdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
	case errors.Is(err, budgetsdomain.ErrBudgetNotFound):
		h.log.BusinessError(op+": budget not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
	case errors.Is(err, budgetsdomain.ErrCategoryNotFound):
		h.log.BusinessError(op+": category not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toBudgetResponse(item budgetsdomain.Usage) budgetResponse {
	return budgetResponse{
		ID:             item.ID,
		Category:       item.CategoryID,
		CategoryName:   item.CategoryName,
		Amount:         item.Amount.StringFixed(2),
		SpentAmount:    item.SpentAmount.InexactFloat64(),
		PercentageUsed: item.PercentageUsed,
		Period:         string(item.Period),
		StartDate:      formatDate(item.StartDate),
		EndDate:        formatDate(item.EndDate),
		CreatedAt:      item.CreatedAt,
	}
}
