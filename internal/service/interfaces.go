package service

import (
	"context"
	"time"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	"projectTracker/internal/models/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(context.Context, *user.User) error
	GetByEmail(context.Context, string) (*user.User, error)
	GetByID(context.Context, uuid.UUID) (*user.User, error)
	ExistsByEmail(context.Context, string) (bool, error)
}

// ProjectRepository - хранилище проектов. Все выборки принимают ownerID:
// чужой проект неотличим от несуществующего.
type ProjectRepository interface {
	Create(context.Context, *project.Project) error
	Update(context.Context, *project.Project) error
	// Delete удаляет проект вместе со всеми его задачами атомарно.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*project.Project, error)
	// GetWithTasks - проект и его задачи (новые сверху) одной выборкой.
	GetWithTasks(ctx context.Context, id, ownerID uuid.UUID) (*project.Project, []*task.Task, error)
	// GetPage возвращает страницу проектов со счётчиками задач и общее число
	// проектов, попавших под фильтр (до пагинации).
	GetPage(ctx context.Context, ownerID uuid.UUID, page, limit int, search string) ([]*project.Stats, int, error)
}

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	Delete(ctx context.Context, id, projectID uuid.UUID) error
	GetByID(ctx context.Context, id, projectID uuid.UUID) (*task.Task, error)
	GetPage(ctx context.Context, projectID uuid.UUID, page, limit int, filter task.Filter) ([]*task.Task, int, error)
}

// clock вынесен, чтобы тесты могли фиксировать время
var now = func() time.Time { return time.Now().UTC() }
