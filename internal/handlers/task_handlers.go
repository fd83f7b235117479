package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"projectTracker/internal/handlers/dto"
	"projectTracker/internal/logger"

	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
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

	page, pageSize := getPageParams(r)
	search := r.URL.Query().Get("search")

	isCompleted, err := getCompletedFilter(r)
	if err != nil {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "is_completed"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное значение is_completed")
		return
	}

	tasks, err := h.TaskService.GetTasks(r.Context(), projectId, userId, page, pageSize, search, isCompleted)
	if err != nil {
		serviceError(w, err, "get_tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks.Items)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromPage(tasks, dto.FromTask))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
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
	taskId, ok := getUUIDParam(w, r, "taskID")
	if !ok {
		return
	}

	t, err := h.TaskService.GetTaskByID(r.Context(), taskId, projectId, userId)
	if err != nil {
		serviceError(w, err, "get_task")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", taskId.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
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

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), projectId, userId, request.Title, request.Description, request.DueDate)
	if err != nil {
		serviceError(w, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTask(created))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
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
	taskId, ok := getUUIDParam(w, r, "taskID")
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), taskId, projectId, userId, request.Title, request.Description, request.DueDate)
	if err != nil {
		serviceError(w, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", taskId.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
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
	taskId, ok := getUUIDParam(w, r, "taskID")
	if !ok {
		return
	}

	toggled, err := h.TaskService.ToggleTask(r.Context(), taskId, projectId, userId)
	if err != nil {
		serviceError(w, err, "toggle_task")
		return
	}

	logger.Info("HTTP_OUT: Статус задачи переключён",
		zap.String("task_id", taskId.String()),
		zap.Bool("is_completed", toggled.IsCompleted),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(toggled))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
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
	taskId, ok := getUUIDParam(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), taskId, projectId, userId); err != nil {
		serviceError(w, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", taskId.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	responseWithJSON(w, http.StatusNoContent, nil)
}
