package handlers

import (
	"context"
	"time"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"
	"projectTracker/internal/service"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type ProjectService interface {
	GetProjects(ctx context.Context, userID uuid.UUID, page, pageSize int, search string) (*service.Page[*project.Stats], error)
	GetProjectByID(ctx context.Context, projectID, userID uuid.UUID) (*project.Detail, error)
	CreateProject(ctx context.Context, userID uuid.UUID, title, description string) (*project.Stats, error)
	UpdateProject(ctx context.Context, projectID, userID uuid.UUID, title, description string) (*project.Stats, error)
	DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error
	GetProgress(ctx context.Context, projectID, userID uuid.UUID) (*project.Stats, error)
}

type TaskService interface {
	GetTasks(ctx context.Context, projectID, userID uuid.UUID, page, pageSize int, search string, isCompleted *bool) (*service.Page[*task.Task], error)
	GetTaskByID(ctx context.Context, taskID, projectID, userID uuid.UUID) (*task.Task, error)
	CreateTask(ctx context.Context, projectID, userID uuid.UUID, title, description string, dueDate *time.Time) (*task.Task, error)
	UpdateTask(ctx context.Context, taskID, projectID, userID uuid.UUID, title, description string, dueDate *time.Time) (*task.Task, error)
	ToggleTask(ctx context.Context, taskID, projectID, userID uuid.UUID) (*task.Task, error)
	DeleteTask(ctx context.Context, taskID, projectID, userID uuid.UUID) error
}
