package transactions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	transactionsdomain "smartfinance-go/internal/domain/transactions"

	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type transactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Category      *string   `json:"category"`
	CategoryName  *string   `json:"category_name"`
	CategoryColor *string   `json:"category_color"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// transactionListResponse keeps the paginated list shape clients read:
// results plus the unpaginated count.
type transactionListResponse struct {
	Count   int64                 `json:"count"`
	Results []transactionResponse `json:"results"`
}

type categoryAmountResponse struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Color    string  `json:"color"`
	Type     string  `json:"type"`
}

type summaryResponse struct {
	TotalIncome       float64                  `json:"total_income"`
	TotalExpenses     float64                  `json:"total_expenses"`
	Balance           float64                  `json:"balance"`
	CategoryBreakdown []categoryAmountResponse `json:"category_breakdown"`
	StartDate         string                   `json:"start_date"`
	EndDate           string                   `json:"end_date"`
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := parseDateParam(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	items, total, err := h.Transactions.ListTransactions(r.Context(), userID, transactionsdomain.ListFilter{
		From:       from,
		To:         to,
		Type:       transactionsdomain.TransactionType(strings.TrimSpace(query.Get("type"))),
		CategoryID: strings.TrimSpace(query.Get("category")),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeTransactionsError(w, "transactions.list", err, userID)
		return
	}

	response := make([]transactionResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toTransactionResponse(item))
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Count: total, Results: response})
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	item, err := h.Transactions.GetTransaction(r.Context(), userID, transactionID)
	if err != nil {
		h.writeTransactionsError(w, "transactions.get", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*item))
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	created, err := h.Transactions.CreateTransaction(r.Context(), transactionsdomain.CreateTransactionInput{
		UserID:      userID,
		Type:        transactionsdomain.TransactionType(req.Type),
		Amount:      req.Amount,
		CategoryID:  req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		h.writeTransactionsError(w, "transactions.create", err, userID)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	transactionID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	updated, err := h.Transactions.UpdateTransaction(r.Context(), transactionsdomain.UpdateTransactionInput{
		ID:          transactionID,
		UserID:      userID,
		Type:        transactionsdomain.TransactionType(req.Type),
		Amount:      req.Amount,
		CategoryID:  req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		h.writeTransactionsError(w, "transactions.update", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.Transactions.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
		h.writeTransactionsError(w, "transactions.delete", err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := parseDateParam(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	summary, err := h.Transactions.Summary(r.Context(), userID, from, to)
	if err != nil {
		h.writeTransactionsError(w, "transactions.summary", err, userID)
		return
	}

	breakdown := make([]categoryAmountResponse, 0, len(summary.CategoryBreakdown))
	for _, item := range summary.CategoryBreakdown {
		breakdown = append(breakdown, categoryAmountResponse{
			Category: item.Category,
			Amount:   item.Amount.InexactFloat64(),
			Color:    item.Color,
			Type:     string(item.Type),
		})
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:       summary.TotalIncome.InexactFloat64(),
		TotalExpenses:     summary.TotalExpenses.InexactFloat64(),
		Balance:           summary.Balance.InexactFloat64(),
		CategoryBreakdown: breakdown,
		StartDate:         formatDate(summary.StartDate),
		EndDate:           formatDate(summary.EndDate),
	})
}

func (h *Handlers) writeTransactionsError(w http.ResponseWriter, op string, err error, userID string) {
	switch {
	case errors.Is(err, transactionsdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
	case errors.Is(err, transactionsdomain.ErrTransactionNotFound):
		h.log.BusinessError(op+": transaction not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
	case errors.Is(err, transactionsdomain.ErrCategoryNotFound):
		h.log.BusinessError(op+": category not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "category_not_found", "category not found")
	case errors.Is(err, transactionsdomain.ErrCategoryReadOnly):
		h.log.BusinessError(op+": default category", err, "user_id", userID)
		writeError(w, http.StatusForbidden, "category_read_only", "default categories cannot be modified")
	case errors.Is(err, transactionsdomain.ErrCategoryNameTaken):
		h.log.BusinessError(op+": category name taken", err, "user_id", userID)
		writeError(w, http.StatusConflict, "category_name_taken", "category name already exists")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toTransactionResponse(item transactionsdomain.TransactionWithCategory) transactionResponse {
	return transactionResponse{
		ID:            item.ID,
		Type:          string(item.Type),
		Amount:        item.Amount.StringFixed(2),
		Category:      item.CategoryID,
		CategoryName:  item.CategoryName,
		CategoryColor: item.CategoryColor,
		Description:   item.Description,
		Date:          formatDate(item.Date),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
