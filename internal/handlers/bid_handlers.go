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

// BidHandler - структура для обработки HTTP-запросов по заявкам.
type BidHandler struct {
	Service    *services.BidService
	Acceptance *services.AcceptanceCoordinator
	Logger     *slog.Logger
	Timeout    time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, acceptance *services.AcceptanceCoordinator, logger *slog.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service:    service,
		Acceptance: acceptance,
		Logger:     logger,
		Timeout:    timeout,
	}
}

// acceptOfferRequest - тело запроса на принятие предложения.
type acceptOfferRequest struct {
	OfferID string `json:"offerId" validate:"required"`
}

// CreateBid обрабатывает запросы для создания заявки.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	principal, errResp := principalFrom(r)
	if errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	var bidReq models.BidRequest
	if errResp = decodeRequest(r, &bidReq); errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	newBid, err := h.Service.CreateBid(ctx, bidReq, principal.ID)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to create bid")
		return
	}

	sendJSON(w, r, http.StatusCreated, newBid)
}

// ListBids обрабатывает запросы для получения списка заявок.
func (h *BidHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	statusStr := r.URL.Query().Get("status")

	bids, err := h.Service.ListBids(ctx, limitStr, offsetStr, statusStr)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve bids")
		return
	}

	sendJSON(w, r, http.StatusOK, bids)
}

// GetBid обрабатывает запросы для получения заявки с предложениями.
func (h *BidHandler) GetBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId := chi.URLParam(r, "bidId")

	bid, err := h.Service.GetBid(ctx, bidId)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve bid")
		return
	}

	sendJSON(w, r, http.StatusOK, bid)
}

// CloseBid обрабатывает запросы для закрытия заявки.
func (h *BidHandler) CloseBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId := chi.URLParam(r, "bidId")

	bid, err := h.Service.CloseBid(ctx, bidId)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to close bid")
		return
	}

	sendJSON(w, r, http.StatusOK, bid)
}

// AcceptOffer обрабатывает запросы для принятия предложения по заявке.
func (h *BidHandler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	principal, errResp := principalFrom(r)
	if errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	var req acceptOfferRequest
	if errResp = decodeRequest(r, &req); errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	bidId := chi.URLParam(r, "bidId")

	deal, err := h.Acceptance.AcceptOffer(ctx, bidId, req.OfferID, principal.ID)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to accept offer")
		return
	}

	h.Logger.Info("offer accepted",
		slog.String("bid_id", bidId),
		slog.String("offer_id", req.OfferID),
		slog.String("deal_id", deal.ID))
	sendJSON(w, r, http.StatusOK, deal)
}
