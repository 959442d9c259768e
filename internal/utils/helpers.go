package utils

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/go-chi/render"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, r *http.Request, errorResponse *models.ErrorResponse) {
	render.Status(r, errorResponse.StatusCode())
	render.JSON(w, r, errorResponse)
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > MaxLimit {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [1:%d]", MaxLimit)
		}
	} else {
		limit = DefaultLimit
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// allowedBidTransitions - переходы заявки; accepted и closed конечны.
var allowedBidTransitions = map[models.BidStatus][]models.BidStatus{
	models.OpenBid:     {models.AcceptedBid, models.ClosedBid},
	models.AcceptedBid: {},
	models.ClosedBid:   {},
}

// allowedOfferTransitions - переходы предложения; accepted и closed конечны.
var allowedOfferTransitions = map[models.OfferStatus][]models.OfferStatus{
	models.OpenOffer:     {models.AcceptedOffer, models.ClosedOffer},
	models.AcceptedOffer: {},
	models.ClosedOffer:   {},
}

// CanTransitionBid - функция для проверки перехода у заявок
func CanTransitionBid(from, to models.BidStatus) bool {
	return slices.Contains(allowedBidTransitions[from], to)
}

// CanTransitionOffer - функция для проверки перехода у предложений
func CanTransitionOffer(from, to models.OfferStatus) bool {
	return slices.Contains(allowedOfferTransitions[from], to)
}

// ParseBidStatus проверяет фильтр по статусу заявки. Пустая строка означает "все статусы".
func ParseBidStatus(s string) ([]models.BidStatus, error) {
	if s == "" {
		return nil, nil
	}
	status := models.BidStatus(s)
	if !slices.Contains(models.BidStatuses, status) {
		return nil, fmt.Errorf("invalid status parameter, must be one of open, accepted, closed")
	}
	return []models.BidStatus{status}, nil
}
