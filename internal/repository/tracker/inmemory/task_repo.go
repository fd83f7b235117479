package inmemory

import (
	"context"

	"projectTracker/internal/models/task"
	repo "projectTracker/internal/repository"
	"github.com/google/uuid"
)

// TaskRepo - представление общего хранилища для задач.
type TaskRepo struct {
	s *Storage
}

func (s *Storage) Tasks() *TaskRepo {
	return &TaskRepo{s: s}
}

func (r *TaskRepo) Create(ctx context.Context, taskToCreate *task.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.tasks[taskToCreate.ID] = taskToCreate
	r.s.taskIDs = append(r.s.taskIDs, taskToCreate.ID)
	return nil
}

func (r *TaskRepo) Update(ctx context.Context, taskToUpdate *task.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.tasks[taskToUpdate.ID] = taskToUpdate
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id, projectID uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	existing, ok := r.s.tasks[id]
	if !ok || existing.ProjectID != projectID {
		return repo.ErrNotFound
	}

	delete(r.s.tasks, id)
	r.s.taskIDs = removeID(r.s.taskIDs, id)
	return nil
}

// GetByID ищет задачу только внутри заявленного проекта: совпадение id под
// другим проектом - это "не найдено".
func (r *TaskRepo) GetByID(ctx context.Context, id, projectID uuid.UUID) (*task.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	taskToGet, ok := r.s.tasks[id]
	if !ok || taskToGet.ProjectID != projectID {
		return nil, repo.ErrNotFound
	}
	return taskToGet, nil
}

func (r *TaskRepo) GetPage(ctx context.Context, projectID uuid.UUID, page, limit int, filter task.Filter) ([]*task.Task, int, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	filtered := []*task.Task{}
	for i := len(r.s.taskIDs) - 1; i >= 0; i-- {
		t := r.s.tasks[r.s.taskIDs[i]]
		if t.ProjectID != projectID {
			continue
		}
		if filter.IsCompleted != nil && t.IsCompleted != *filter.IsCompleted {
			continue
		}
		if !matchesSearch(t.Title, t.Description, filter.Search) {
			continue
		}
		filtered = append(filtered, t)
	}

	return paginate(filtered, page, limit), len(filtered), nil
}
