package services

import (
	"errors"

	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
)

// translate переводит ошибку хранилища в ошибку предметной области.
// notFound - сообщение для отсутствующей сущности.
func translate(err error, notFound string) error {
	var resp *models.ErrorResponse
	switch {
	case err == nil:
		return nil
	case errors.As(err, &resp):
		return resp
	case errors.Is(err, repository.ErrNotFound) && notFound != "":
		return models.NewNotFoundError("%s", notFound)
	case errors.Is(err, repository.ErrConflict):
		return models.NewConflictError("the bid was modified concurrently, reload and retry")
	case errors.Is(err, repository.ErrInvalid):
		return models.NewErrorResponseWithCause(models.ValidationKind, "request values were rejected by the store (out of range or violating a constraint)", err)
	default:
		return models.NewStorageError(err)
	}
}
