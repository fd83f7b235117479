package handlers

import (
	"errors"
	"net/http"

	"projectTracker/internal/logger"
	"projectTracker/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError переводит бизнес-ошибку сервиса в HTTP-ответ.
// Возвращает false, если ошибка не бизнесовая и её нужно отдать как 500.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode, map[string]any{
		"error":   businessErr.Code,
		"message": businessErr.Message,
		"details": businessErr.Details,
	})
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "EMAIL_TAKEN":
		return http.StatusConflict
	case "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// serviceError - общий хвост обработчиков: сначала бизнес-ошибки, всё
// остальное уходит наверх как 500 без подробностей.
func serviceError(w http.ResponseWriter, err error, operation string) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Ошибка Service", err, zap.String("operation", operation))
	responseWithError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
