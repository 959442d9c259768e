package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// NewPingHandler обрабатывает GET запрос к /api/ping
func NewPingHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("ping request")
		render.PlainText(w, r, "ok")
	}
}

// VerifyPrincipal возвращает пользователя, подтверждённого токеном.
func VerifyPrincipal(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, errResp := principalFrom(r)
		if errResp != nil {
			writeError(w, r, logger, errResp, "")
			return
		}
		sendJSON(w, r, http.StatusOK, principal)
	}
}
