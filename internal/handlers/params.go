package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"projectTracker/internal/logger"
	"projectTracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// getCallerID - id пользователя, положенный middleware.Auth в контекст.
func getCallerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userId, ok := middleware.GetUserID(r.Context())
	if !ok {
		logger.Warn("HTTP: Запрос без аутентификации", zap.String("path", r.URL.Path))
		responseWithError(w, http.StatusUnauthorized, "требуется аутентификация")
		return uuid.Nil, false
	}
	return userId, true
}

func getUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, name)
	id, err := uuid.Parse(idParam)
	if err != nil || id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("param", name),
			zap.String("value", idParam),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить "+name)
		return uuid.Nil, false
	}
	return id, true
}

// getPageParams читает параметры пагинации как есть: нормализация значений
// происходит в сервисе.
func getPageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}

// getCompletedFilter - тернарный фильтр: параметр отсутствует / true / false.
func getCompletedFilter(r *http.Request) (*bool, error) {
	raw := r.URL.Query().Get("is_completed")
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &val, nil
}
