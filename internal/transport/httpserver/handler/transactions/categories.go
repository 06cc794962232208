package transactions

import (
	"net/http"
	"time"

	transactionsdomain "smartfinance-go/internal/domain/transactions"
)

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Icon  string  `json:"icon"`
	Color *string `json:"color"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	categories, err := h.Transactions.ListCategories(r.Context(), userID)
	if err != nil {
		h.writeTransactionsError(w, "categories.list", err, userID)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	category, err := h.Transactions.GetCategory(r.Context(), userID, categoryID)
	if err != nil {
		h.writeTransactionsError(w, "categories.get", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	created, err := h.Transactions.CreateCategory(r.Context(), transactionsdomain.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Type:   transactionsdomain.TransactionType(req.Type),
		Icon:   req.Icon,
		Color:  req.Color,
	})
	if err != nil {
		h.writeTransactionsError(w, "categories.create", err, userID)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	categoryID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	input := transactionsdomain.UpdateCategoryInput{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
	}
	if req.Type != nil {
		kind := transactionsdomain.TransactionType(*req.Type)
		input.Type = &kind
	}

	updated, err := h.Transactions.UpdateCategory(r.Context(), input)
	if err != nil {
		h.writeTransactionsError(w, "categories.update", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.Transactions.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		h.writeTransactionsError(w, "categories.delete", err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(category transactionsdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Type:      string(category.Type),
		Icon:      category.Icon,
		Color:     category.Color,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
	}
}
