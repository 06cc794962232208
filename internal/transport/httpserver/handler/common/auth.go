package common

import (
	"errors"
	"net/http"
	"time"

	accountdomain "smartfinance-go/internal/domain/account"
	"smartfinance-go/internal/transport/httpserver/middleware"

	"github.com/shopspring/decimal"
)

type authMeResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	MonthlyIncome string    `json:"monthly_income"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type updateMeRequest struct {
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
	Currency      *string          `json:"currency"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	profile, err := h.Accounts.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.writeAccountError(w, "auth.me", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toAuthMeResponse(profile))
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	profile, err := h.Accounts.UpdateProfile(r.Context(), accountdomain.UpdateProfileInput{
		UserID:        user.ID,
		MonthlyIncome: req.MonthlyIncome,
		Currency:      req.Currency,
	})
	if err != nil {
		h.writeAccountError(w, "auth.update_me", err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, toAuthMeResponse(profile))
}

func (h *Handlers) writeAccountError(w http.ResponseWriter, op string, err error, userID string) {
	switch {
	case errors.Is(err, accountdomain.ErrInvalidInput):
		h.log.BusinessError(op+": invalid input", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_request", ValidationMessage(err))
	case errors.Is(err, accountdomain.ErrProfileNotFound):
		h.log.BusinessError(op+": profile not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "profile_not_found", "profile not found")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toAuthMeResponse(profile *accountdomain.Profile) authMeResponse {
	response := authMeResponse{
		ID:            profile.UserID,
		MonthlyIncome: profile.MonthlyIncome.StringFixed(2),
		Currency:      profile.Currency,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
	if profile.Email != nil {
		response.Email = *profile.Email
	}
	if profile.Username != nil {
		response.Username = *profile.Username
	}
	return response
}
