package transactions

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	goalsdomain "smartfinance-go/internal/domain/goals"

	"github.com/shopspring/decimal"
)

type goalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	Description   string          `json:"description"`
	IsCompleted   bool            `json:"is_completed"`
}

type addFundsRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type goalResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TargetAmount       string    `json:"target_amount"`
	CurrentAmount      string    `json:"current_amount"`
	ProgressPercentage float64   `json:"progress_percentage"`
	TargetDate         string    `json:"target_date"`
	Description        string    `json:"description"`
	IsCompleted        bool      `json:"is_completed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	items, err := h.Goals.ListGoals(r.Context(), userID)
	if err != nil {
		h.writeGoalsError(w, "goals.list", err, userID)
		return
	}

	response := make([]goalResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toGoalResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	goal, err := h.Goals.GetGoal(r.Context(), userID, goalID)
	if err != nil {
		h.writeGoalsError(w, "goals.get", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(*goal))
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	input, ok := toGoalInput(w, userID, req)
	if !ok {
		return
	}

	created, err := h.Goals.CreateGoal(r.Context(), input)
	if err != nil {
		h.writeGoalsError(w, "goals.create", err, userID)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(*created))
}

func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	goalID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	input, ok := toGoalInput(w, userID, req)
	if !ok {
		return
	}

	updated, err := h.Goals.UpdateGoal(r.Context(), goalID, input)
	if err != nil {
		h.writeGoalsError(w, "goals.update", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(*updated))
}

func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.Goals.DeleteGoal(r.Context(), userID, goalID); err != nil {
		h.writeGoalsError(w, "goals.delete", err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFunds accepts the amount as a JSON number or numeric string. Anything
// else, including a missing body, is rejected as an invalid amount.
func (h *Handlers) AddFunds(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	// An empty body adds nothing, like a missing amount.
	var req addFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_amount", "Invalid amount")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", "Invalid amount")
		return
	}

	goal, err := h.Goals.AddFunds(r.Context(), userID, goalID, amount)
	if err != nil {
		h.writeGoalsError(w, "goals.add_funds", err, userID)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(*goal))
}

func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, nil
	}
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func toGoalInput(w http.ResponseWriter, userID string, req goalRequest) (goalsdomain.GoalInput, bool) {
	targetDate, err := parseDateRequired(req.TargetDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid target_date")
		return goalsdomain.GoalInput{}, false
	}

	return goalsdomain.GoalInput{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
		Description:   req.Description,
		IsCompleted:   req.IsCompleted,
	}, true
}

func (h *Handlers) writeGoalsError(w http.ResponseWriter, op string, err error, userID string) {
	switch {
	case errors.Is(err, goalsdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
	case errors.Is(err, goalsdomain.ErrGoalNotFound):
		h.log.BusinessError(op+": goal not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "goal_not_found", "savings goal not found")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toGoalResponse(goal goalsdomain.SavingsGoal) goalResponse {
	return goalResponse{
		ID:                 goal.ID,
		Name:               goal.Name,
		TargetAmount:       goal.TargetAmount.StringFixed(2),
		CurrentAmount:      goal.CurrentAmount.StringFixed(2),
		ProgressPercentage: goal.ProgressPercentage(),
		TargetDate:         formatDate(goal.TargetDate),
		Description:        goal.Description,
		IsCompleted:        goal.IsCompleted,
		CreatedAt:          goal.CreatedAt,
		UpdatedAt:          goal.UpdatedAt,
	}
}
