package services

import (
	"context"
	"strings"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
)

// TransporterService - сервис для работы с перевозчиками.
type TransporterService struct {
	Store repository.Store
}

// NewTransporterService создает новый экземпляр TransporterService.
func NewTransporterService(store repository.Store) *TransporterService {
	return &TransporterService{Store: store}
}

// CreateTransporter создает перевозчика. Имя обязательно.
func (s *TransporterService) CreateTransporter(ctx context.Context, req models.TransporterRequest) (*models.Transporter, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, models.NewValidationError("transporter name is required")
	}

	transporter := models.Transporter{
		Name:          strings.TrimSpace(*req.Name),
		ContactNumber: req.ContactNumber,
		VehicleType:   req.VehicleType,
		CapacityTons:  req.CapacityTons,
		Status:        models.ActiveTransporter,
	}
	if req.Status != nil {
		transporter.Status = *req.Status
	}

	created, err := s.Store.CreateTransporter(ctx, transporter)
	if err != nil {
		return nil, translate(err, "")
	}
	return created, nil
}

// GetTransporter возвращает перевозчика по ID.
func (s *TransporterService) GetTransporter(ctx context.Context, transporterId string) (*models.Transporter, error) {
	transporter, err := s.Store.GetTransporter(ctx, transporterId)
	if err != nil {
		return nil, translate(err, "transporter not found")
	}
	return transporter, nil
}

// ListTransporters возвращает всех перевозчиков.
func (s *TransporterService) ListTransporters(ctx context.Context) ([]models.Transporter, error) {
	transporters, err := s.Store.ListTransporters(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	return transporters, nil
}

// CountTransporters возвращает количество перевозчиков.
func (s *TransporterService) CountTransporters(ctx context.Context) (int, error) {
	count, err := s.Store.CountTransporters(ctx)
	if err != nil {
		return 0, translate(err, "")
	}
	return count, nil
}

// UpdateTransporter меняет только переданные поля.
func (s *TransporterService) UpdateTransporter(ctx context.Context, transporterId string, req models.TransporterRequest) (*models.Transporter, error) {
	var updated *models.Transporter
	err := s.Store.ExecTx(ctx, func(q repository.Querier) error {
		transporter, err := q.GetTransporter(ctx, transporterId)
		if err != nil {
			return translate(err, "transporter not found")
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return models.NewValidationError("transporter name cannot be empty")
			}
			transporter.Name = strings.TrimSpace(*req.Name)
		}
		if req.ContactNumber != nil {
			transporter.ContactNumber = req.ContactNumber
		}
		if req.VehicleType != nil {
			transporter.VehicleType = req.VehicleType
		}
		if req.CapacityTons != nil {
			transporter.CapacityTons = req.CapacityTons
		}
		if req.Status != nil {
			transporter.Status = *req.Status
		}

		updated, err = q.UpdateTransporter(ctx, *transporter)
		return translate(err, "transporter not found")
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return updated, nil
}

// DeleteTransporter удаляет перевозчика без истории.
// Перевозчика с предложениями или сделками удалить нельзя: каскад стёр бы журнал сделок.
func (s *TransporterService) DeleteTransporter(ctx context.Context, transporterId string) error {
	err := s.Store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetTransporter(ctx, transporterId); err != nil {
			return translate(err, "transporter not found")
		}
		activity, err := q.CountTransporterActivity(ctx, transporterId)
		if err != nil {
			return translate(err, "")
		}
		if activity > 0 {
			return models.NewConflictError("transporter has %d offers or deals and cannot be deleted, set status to inactive instead", activity)
		}
		return translate(q.DeleteTransporter(ctx, transporterId), "transporter not found")
	})
	return translate(err, "")
}

// TransporterHistory возвращает предложения и сделки перевозчика.
func (s *TransporterService) TransporterHistory(ctx context.Context, transporterId string) (*models.TransporterHistory, error) {
	transporter, err := s.Store.GetTransporter(ctx, transporterId)
	if err != nil {
		return nil, translate(err, "transporter not found")
	}

	offers, err := s.Store.ListOffersByTransporter(ctx, transporterId)
	if err != nil {
		return nil, translate(err, "")
	}
	for i := range offers {
		offers[i].Transporter = nil
	}

	deals, err := s.Store.ListDealsByTransporter(ctx, transporterId)
	if err != nil {
		return nil, translate(err, "")
	}
	for i := range deals {
		deals[i].Transporter = nil
	}

	return &models.TransporterHistory{
		Transporter: models.TransporterSummary{ID: transporter.ID, Name: transporter.Name},
		Offers:      offers,
		Deals:       deals,
	}, nil
}
