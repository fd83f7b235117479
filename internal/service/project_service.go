package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/project"
	rep "projectTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService struct {
	repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) ProjectService {
	return ProjectService{
		repo: repo,
	}
}

// GetProjects возвращает страницу проектов пользователя со счётчиками задач.
// totalCount считается по отфильтрованному набору до пагинации.
func (s *ProjectService) GetProjects(ctx context.Context, userID uuid.UUID, page, pageSize int, search string) (*Page[*project.Stats], error) {
	page, pageSize = normalizePage(page, pageSize)
	search = strings.TrimSpace(search)

	projects, total, err := s.repo.GetPage(ctx, userID, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("получение проектов: %w", err)
	}

	return newPage(projects, total, page, pageSize), nil
}

// GetProjectByID - проект с полным списком задач (новые сверху).
// Чужой проект неотличим от несуществующего.
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID, userID uuid.UUID) (*project.Detail, error) {
	proj, tasks, err := s.repo.GetWithTasks(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.String("target_id", projectID.String()))
			return nil, NewNotFound(ResourceProject, projectID.String())
		}
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	return &project.Detail{Project: proj, Tasks: tasks}, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, userID uuid.UUID, title, description string) (*project.Stats, error) {
	title, vErr := validateTitle(title)
	if vErr != nil {
		return nil, vErr
	}
	desc, vErr := validateDescription(description)
	if vErr != nil {
		return nil, vErr
	}

	proj := &project.Project{
		ID:          uuid.New(),
		OwnerID:     userID,
		Title:       title,
		Description: desc,
		CreatedAt:   now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("создание проекта: %w", err)
	}

	logger.Info("Service: Проект создан",
		zap.String("project_id", proj.ID.String()),
		zap.String("owner_id", userID.String()))

	// у нового проекта нет задач, прогресс нулевой
	return &project.Stats{Project: proj}, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, title, description string) (*project.Stats, error) {
	title, vErr := validateTitle(title)
	if vErr != nil {
		return nil, vErr
	}
	desc, vErr := validateDescription(description)
	if vErr != nil {
		return nil, vErr
	}

	proj, err := s.repo.GetByID(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.String("target_id", projectID.String()))
			return nil, NewNotFound(ResourceProject, projectID.String())
		}
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	// владелец и created_at неизменяемы, заменяются только title/description
	proj.Title = title
	proj.Description = desc

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("обновление проекта: %w", err)
	}

	return s.GetProgress(ctx, projectID, userID)
}

// DeleteProject удаляет проект и каскадно все его задачи одной атомарной
// операцией - частичное удаление недопустимо.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	err := s.repo.Delete(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.String("target_id", projectID.String()))
			return NewNotFound(ResourceProject, projectID.String())
		}
		return fmt.Errorf("удаление проекта: %w", err)
	}

	logger.Info("Service: Проект удалён", zap.String("project_id", projectID.String()))
	return nil
}

// GetProgress пересчитывает прогресс по живому списку задач при каждом
// чтении, в БД он не хранится.
func (s *ProjectService) GetProgress(ctx context.Context, projectID, userID uuid.UUID) (*project.Stats, error) {
	proj, tasks, err := s.repo.GetWithTasks(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.String("target_id", projectID.String()))
			return nil, NewNotFound(ResourceProject, projectID.String())
		}
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	return project.StatsOf(proj, tasks), nil
}
