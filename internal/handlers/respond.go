package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeRequest разбирает тело запроса и проверяет теги validate.
func decodeRequest(r *http.Request, dst any) *models.ErrorResponse {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return models.NewValidationError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return models.NewValidationError("invalid field %s: failed on %s", fe.Field(), fe.Tag())
		}
		return models.NewValidationError("invalid request body")
	}
	return nil
}

// writeError логирует ошибку и отправляет её клиенту.
// Ошибки без категории отдаются как 500 с общим сообщением.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	var errorResponse *models.ErrorResponse
	if !errors.As(err, &errorResponse) {
		errorResponse = &models.ErrorResponse{Message: fallback, Err: err}
	}

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("kind", string(errorResponse.Kind)),
		slog.String("reason", errorResponse.Message),
	}
	if errorResponse.Err != nil {
		attrs = append(attrs, slog.String("cause", errorResponse.Err.Error()))
	}
	if errorResponse.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	utils.SendErrorResponse(w, r, errorResponse)
}

// principalFrom возвращает пользователя, подтверждённого middleware.
func principalFrom(r *http.Request) (auth.Principal, *models.ErrorResponse) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return auth.Principal{}, models.NewErrorResponse(models.UnauthorizedKind, "no token provided")
	}
	return principal, nil
}

func sendJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
