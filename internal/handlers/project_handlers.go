package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"projectTracker/internal/handlers/dto"
	"projectTracker/internal/logger"

	"go.uber.org/zap"
)

type ProjectHandler struct {
	ProjectService ProjectService
}

func NewProjectHandler(projectService ProjectService) ProjectHandler {
	return ProjectHandler{
		ProjectService: projectService,
	}
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userId, ok := getCallerID(w, r)
	if !ok {
		return
	}

	page, pageSize := getPageParams(r)
	search := r.URL.Query().Get("search")

	projects, err := h.ProjectService.GetProjects(r.Context(), userId, page, pageSize, search)
	if err != nil {
		serviceError(w, err, "get_projects")
		return
	}

	logger.Info("HTTP_OUT: Проекты получены",
		zap.Int("count", len(projects.Items)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromPage(projects, dto.FromProjectStats))
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userId, ok := getCallerID(w, r)
	if !ok {
		return
	}
	projectId, ok := getUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	detail, err := h.ProjectService.GetProjectByID(r.Context(), projectId, userId)
	if err != nil {
		serviceError(w, err, "get_project")
		return
	}

	logger.Info("HTTP_OUT: Проект получен",
		zap.String("project_id", projectId.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromProjectDetail(detail))
}

func (h *ProjectHandler) PostProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userId, ok := getCallerID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	created, err := h.ProjectService.CreateProject(r.Context(), userId, request.Title, request.Description)
	if err != nil {
		serviceError(w, err, "create_project")
		return
	}

	logger.Info("HTTP_OUT: Проект создан",
		zap.String("project_id", created.Project.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromProjectStats(created))
}

func (h *ProjectHandler) UpdateProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userId, ok := getCallerID(w, r)
	if !ok {
		return
	}
	projectId, ok := getUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	var request dto.UpdateProjectRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	updated, err := h.ProjectService.UpdateProject(r.Context(), projectId, userId, request.Title, request.Description)
	if err != nil {
		serviceError(w, err, "update_project")
		return
	}

	logger.Info("HTTP_OUT: Проект обновлён",
		zap.String("project_id", projectId.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromProjectStats(updated))
}

func (h *ProjectHandler) DeleteProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userId, ok := getCallerID(w, r)
	if !ok {
		return
	}
	projectId, ok := getUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), projectId, userId); err != nil {
		serviceError(w, err, "delete_project")
		return
	}

	logger.Info("HTTP_OUT: Проект удалён",
		zap.String("project_id", projectId.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	responseWithJSON(w, http.StatusNoContent, nil)
}

func (h *ProjectHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userId, ok := getCallerID(w, r)
	if !ok {
		return
	}
	projectId, ok := getUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	stats, err := h.ProjectService.GetProgress(r.Context(), projectId, userId)
	if err != nil {
		serviceError(w, err, "get_progress")
		return
	}

	logger.Info("HTTP_OUT: Прогресс получен",
		zap.String("project_id", projectId.String()),
		zap.Float64("percentage", stats.Percentage()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromProgress(stats))
}
