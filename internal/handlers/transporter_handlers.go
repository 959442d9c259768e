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

// TransporterHandler - структура для обработки HTTP-запросов по перевозчикам.
type TransporterHandler struct {
	Service *services.TransporterService
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewTransporterHandler создает новый экземпляр TransporterHandler.
func NewTransporterHandler(service *services.TransporterService, logger *slog.Logger, timeout time.Duration) *TransporterHandler {
	return &TransporterHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateTransporter обрабатывает запросы для создания перевозчика.
func (h *TransporterHandler) CreateTransporter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.TransporterRequest
	if errResp := decodeRequest(r, &req); errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	transporter, err := h.Service.CreateTransporter(ctx, req)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to create transporter")
		return
	}

	sendJSON(w, r, http.StatusCreated, transporter)
}

// ListTransporters обрабатывает запросы для получения списка перевозчиков.
func (h *TransporterHandler) ListTransporters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	transporters, err := h.Service.ListTransporters(ctx)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve transporters")
		return
	}

	sendJSON(w, r, http.StatusOK, transporters)
}

// CountTransporters возвращает {"count": n}.
func (h *TransporterHandler) CountTransporters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	count, err := h.Service.CountTransporters(ctx)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to count transporters")
		return
	}

	sendJSON(w, r, http.StatusOK, map[string]int{"count": count})
}

// GetTransporter обрабатывает запросы для получения перевозчика по ID.
func (h *TransporterHandler) GetTransporter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	transporter, err := h.Service.GetTransporter(ctx, chi.URLParam(r, "transporterId"))
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve transporter")
		return
	}

	sendJSON(w, r, http.StatusOK, transporter)
}

// UpdateTransporter обрабатывает частичное изменение перевозчика.
func (h *TransporterHandler) UpdateTransporter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.TransporterRequest
	if errResp := decodeRequest(r, &req); errResp != nil {
		writeError(w, r, h.Logger, errResp, "")
		return
	}

	transporter, err := h.Service.UpdateTransporter(ctx, chi.URLParam(r, "transporterId"), req)
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to update transporter")
		return
	}

	sendJSON(w, r, http.StatusOK, transporter)
}

// DeleteTransporter обрабатывает запросы для удаления перевозчика.
func (h *TransporterHandler) DeleteTransporter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.DeleteTransporter(ctx, chi.URLParam(r, "transporterId")); err != nil {
		writeError(w, r, h.Logger, err, "failed to delete transporter")
		return
	}

	sendJSON(w, r, http.StatusOK, map[string]string{"message": "transporter deleted"})
}

// TransporterHistory обрабатывает запросы для получения истории перевозчика.
func (h *TransporterHandler) TransporterHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	history, err := h.Service.TransporterHistory(ctx, chi.URLParam(r, "transporterId"))
	if err != nil {
		writeError(w, r, h.Logger, err, "failed to retrieve transporter history")
		return
	}

	sendJSON(w, r, http.StatusOK, history)
}
