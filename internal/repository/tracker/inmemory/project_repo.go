package inmemory

import (
	"context"

	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	repo "projectTracker/internal/repository"

	"github.com/google/uuid"
)

// ProjectRepo - представление общего хранилища для проектов.
type ProjectRepo struct {
	s *Storage
}

func (s *Storage) Projects() *ProjectRepo {
	return &ProjectRepo{s: s}
}

func (r *ProjectRepo) Create(ctx context.Context, projectToCreate *project.Project) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.projects[projectToCreate.ID] = projectToCreate
	r.s.projectIDs = append(r.s.projectIDs, projectToCreate.ID)
	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, projectToUpdate *project.Project) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.projects[projectToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.projects[projectToUpdate.ID] = projectToUpdate
	return nil
}

// Delete удаляет проект и все его задачи под одной блокировкой - каскад
// атомарен, осиротевшие задачи наблюдать невозможно.
func (r *ProjectRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	existing, ok := r.s.projects[id]
	if !ok || existing.OwnerID != ownerID {
		return repo.ErrNotFound
	}

	for _, taskID := range r.s.taskIDs {
		if r.s.tasks[taskID].ProjectID == id {
			delete(r.s.tasks, taskID)
		}
	}
	remaining := r.s.taskIDs[:0]
	for _, taskID := range r.s.taskIDs {
		if _, alive := r.s.tasks[taskID]; alive {
			remaining = append(remaining, taskID)
		}
	}
	r.s.taskIDs = remaining

	delete(r.s.projects, id)
	r.s.projectIDs = removeID(r.s.projectIDs, id)
	return nil
}

// GetByID - выборка с проверкой владельца: чужой проект неотличим от
// несуществующего.
func (r *ProjectRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*project.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	return r.getScoped(id, ownerID)
}

func (r *ProjectRepo) getScoped(id, ownerID uuid.UUID) (*project.Project, error) {
	projectToGet, ok := r.s.projects[id]
	if !ok || projectToGet.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	return projectToGet, nil
}

func (r *ProjectRepo) GetWithTasks(ctx context.Context, id, ownerID uuid.UUID) (*project.Project, []*task.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	projectToGet, err := r.getScoped(id, ownerID)
	if err != nil {
		return nil, nil, err
	}

	// обходим в обратном порядке вставки: новые сверху
	tasks := []*task.Task{}
	for i := len(r.s.taskIDs) - 1; i >= 0; i-- {
		t := r.s.tasks[r.s.taskIDs[i]]
		if t.ProjectID == id {
			tasks = append(tasks, t)
		}
	}
	return projectToGet, tasks, nil
}

func (r *ProjectRepo) GetPage(ctx context.Context, ownerID uuid.UUID, page, limit int, search string) ([]*project.Stats, int, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	filtered := []*project.Project{}
	for i := len(r.s.projectIDs) - 1; i >= 0; i-- {
		p := r.s.projects[r.s.projectIDs[i]]
		if p.OwnerID != ownerID {
			continue
		}
		if !matchesSearch(p.Title, p.Description, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	pageItems := paginate(filtered, page, limit)

	result := make([]*project.Stats, 0, len(pageItems))
	for _, p := range pageItems {
		stats := &project.Stats{Project: p}
		for _, taskID := range r.s.taskIDs {
			t := r.s.tasks[taskID]
			if t.ProjectID != p.ID {
				continue
			}
			stats.TotalTasks++
			if t.IsCompleted {
				stats.CompletedTasks++
			}
		}
		result = append(result, stats)
	}

	return result, total, nil
}
