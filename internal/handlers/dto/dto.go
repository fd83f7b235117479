package dto

import (
	"time"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"
	"projectTracker/internal/service"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        *string   `json:"description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	TotalTasks         int       `json:"total_tasks"`
	CompletedTasks     int       `json:"completed_tasks"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

func FromProjectStats(s *project.Stats) ProjectResponse {
	return ProjectResponse{
		ID:                 s.Project.ID,
		Title:              s.Project.Title,
		Description:        s.Project.Description,
		CreatedAt:          s.Project.CreatedAt,
		TotalTasks:         s.TotalTasks,
		CompletedTasks:     s.CompletedTasks,
		ProgressPercentage: s.Percentage(),
	}
}

type ProjectDetailResponse struct {
	ProjectResponse
	Tasks []TaskResponse `json:"tasks"`
}

// FromProjectDetail считает сводку по загруженному списку задач: прогресс
// всегда производный, из БД он не приходит.
func FromProjectDetail(d *project.Detail) ProjectDetailResponse {
	return ProjectDetailResponse{
		ProjectResponse: FromProjectStats(project.StatsOf(d.Project, d.Tasks)),
		Tasks:           FromTaskList(d.Tasks),
	}
}

type ProgressResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	TotalTasks         int       `json:"total_tasks"`
	CompletedTasks     int       `json:"completed_tasks"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

func FromProgress(s *project.Stats) ProgressResponse {
	return ProgressResponse{
		ID:                 s.Project.ID,
		Title:              s.Project.Title,
		TotalTasks:         s.TotalTasks,
		CompletedTasks:     s.CompletedTasks,
		ProgressPercentage: s.Percentage(),
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest намеренно не содержит статуса выполнения: он меняется
// только через toggle.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type PageResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// FromPage переводит страницу сервиса в страницу ответов, сохраняя счётчики.
func FromPage[T any, U any](p *service.Page[T], mapItem func(T) U) PageResponse[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = mapItem(item)
	}
	return PageResponse[U]{
		Items:      items,
		TotalCount: p.TotalCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}
