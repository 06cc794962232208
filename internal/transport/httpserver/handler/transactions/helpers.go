package transactions

import (
	"net/http"
	"strings"
	"time"

	commonhandler "smartfinance-go/internal/transport/httpserver/handler/common"
	"smartfinance-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}

func parseDateParam(value string) (*time.Time, error) {
	return commonhandler.ParseDateParam(value)
}

func parseDateRequired(value string) (time.Time, error) {
	return commonhandler.ParseDateRequired(value)
}

func parseIntParam(value string, fallback int) (int, error) {
	return commonhandler.ParseIntParam(value, fallback)
}

func formatDate(value time.Time) string {
	return commonhandler.FormatDate(value)
}

func validationMessage(err error) string {
	return commonhandler.ValidationMessage(err)
}

// requestUser resolves the caller and writes 401 when the context has none.
func requestUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return "", false
	}
	return user.ID, true
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return "", false
	}
	return id, true
}
