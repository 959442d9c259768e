package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/services"
)

// DealHandler - структура для обработки HTTP-запросов по сделкам.
type DealHandler struct {
	Service *services.DealService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewDealHandler создает новый экземпляр DealHandler.
func NewDealHandler(service *services.DealService, logger *slog.Logger, timeout time.Duration) *DealHandler {
	return &DealHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// LogDeal обрабатывает запросы для ручной регистрации сделки.
func (h *DealHandler) LogDeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	principal, errResp := principalFrom(r)
	if errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	var dealReq models.DealRequest
	if errResp = decodeRequest(r, &dealReq); errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	deal, err := h.Service.LogDeal(ctx, dealReq, principal.ID)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to log deal")
		return
	}

	sendJSON(w, r, http.StatusCreated, deal)
}

// ListDeals обрабатывает запросы для получения журнала сделок.
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	deals, err := h.Service.ListDeals(ctx)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve deals")
		return
	}

	sendJSON(w, r, http.StatusOK, deals)
}
