package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	rep "projectTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	repo        TaskRepository
	projectRepo ProjectRepository
}

func NewTaskService(repo TaskRepository, projectRepo ProjectRepository) TaskService {
	return TaskService{
		repo:        repo,
		projectRepo: projectRepo,
	}
}

// getOwnProject - обязательная проверка цепочки владения перед любой
// операцией с задачами. Пока владение не доказано, хранилище задач не
// трогается вообще.
func (s *TaskService) getOwnProject(ctx context.Context, projectID, userID uuid.UUID) (*project.Project, error) {
	proj, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.String("target_id", projectID.String()))
			return nil, NewNotFound(ResourceProject, projectID.String())
		}
		return nil, fmt.Errorf("получение проекта: %w", err)
	}
	return proj, nil
}

func (s *TaskService) GetTasks(ctx context.Context, projectID, userID uuid.UUID, page, pageSize int, search string, isCompleted *bool) (*Page[*task.Task], error) {
	if _, err := s.getOwnProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	page, pageSize = normalizePage(page, pageSize)
	filter := task.Filter{
		Search:      strings.TrimSpace(search),
		IsCompleted: isCompleted,
	}

	tasks, total, err := s.repo.GetPage(ctx, projectID, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	return newPage(tasks, total, page, pageSize), nil
}

// GetTaskByID ищет задачу только внутри заявленного проекта: задача под
// другим проектом того же пользователя - это тоже "не найдено".
func (s *TaskService) GetTaskByID(ctx context.Context, taskID, projectID, userID uuid.UUID) (*task.Task, error) {
	if _, err := s.getOwnProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return nil, NewNotFound(ResourceTask, taskID.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *TaskService) CreateTask(ctx context.Context, projectID, userID uuid.UUID, title, description string, dueDate *time.Time) (*task.Task, error) {
	if _, err := s.getOwnProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	title, vErr := validateTitle(title)
	if vErr != nil {
		return nil, vErr
	}
	desc, vErr := validateDescription(description)
	if vErr != nil {
		return nil, vErr
	}

	t := &task.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       title,
		Description: desc,
		DueDate:     dueDate,
		IsCompleted: false,
		CreatedAt:   now(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.String("project_id", projectID.String()))

	return t, nil
}

// UpdateTask заменяет title/description/dueDate. Статус выполнения и его
// отметка времени здесь не меняются никогда, только через ToggleTask.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, projectID, userID uuid.UUID, title, description string, dueDate *time.Time) (*task.Task, error) {
	if _, err := s.getOwnProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	title, vErr := validateTitle(title)
	if vErr != nil {
		return nil, vErr
	}
	desc, vErr := validateDescription(description)
	if vErr != nil {
		return nil, vErr
	}

	t, err := s.repo.GetByID(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return nil, NewNotFound(ResourceTask, taskID.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	t.Title = title
	t.Description = desc
	t.DueDate = dueDate

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return t, nil
}

// ToggleTask переключает статус выполнения. Переход в "выполнено" ставит
// completed_at = now (UTC), обратный переход очищает отметку.
func (s *TaskService) ToggleTask(ctx context.Context, taskID, projectID, userID uuid.UUID) (*task.Task, error) {
	if _, err := s.getOwnProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return nil, NewNotFound(ResourceTask, taskID.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	t.IsCompleted = !t.IsCompleted
	if t.IsCompleted {
		completedAt := now()
		t.CompletedAt = &completedAt
	} else {
		t.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	logger.Info("Service: Статус задачи переключён",
		zap.String("task_id", t.ID.String()),
		zap.Bool("is_completed", t.IsCompleted))

	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, projectID, userID uuid.UUID) error {
	if _, err := s.getOwnProject(ctx, projectID, userID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return NewNotFound(ResourceTask, taskID.String())
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}
