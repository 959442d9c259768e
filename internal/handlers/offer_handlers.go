package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/services"

	"github.com/go-chi/chi/v5"
)

// OfferHandler - структура для обработки HTTP-запросов по предложениям.
type OfferHandler struct {
	Service *services.OfferService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewOfferHandler создает новый экземпляр OfferHandler.
func NewOfferHandler(service *services.OfferService, logger *slog.Logger, timeout time.Duration) *OfferHandler {
	return &OfferHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateOffer обрабатывает запросы для создания предложения.
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var offerReq models.OfferRequest
	if errResp := decodeRequest(r, &offerReq); errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	newOffer, err := h.Service.CreateOffer(ctx, offerReq)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to create offer")
		return
	}

	sendJSON(w, r, http.StatusCreated, newOffer)
}

// ListOffers обрабатывает запросы для получения списка предложений.
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offers, err := h.Service.ListOffers(ctx)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve offers")
		return
	}

	sendJSON(w, r, http.StatusOK, offers)
}

// GetOffer обрабатывает запросы для получения предложения по ID.
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offer, err := h.Service.GetOffer(ctx, chi.URLParam(r, "offerId"))
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve offer")
		return
	}

	sendJSON(w, r, http.StatusOK, offer)
}

// DeleteOffer обрабатывает запросы для удаления предложения.
func (h *OfferHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offerId := chi.URLParam(r, "offerId")

	if err := h.Service.DeleteOffer(ctx, offerId); err != nil {
		writeError(w, r, h.Logger, err, "failed to delete offer")
		return
	}

	sendJSON(w, r, http.StatusOK, map[string]string{"message": "offer deleted"})
}
