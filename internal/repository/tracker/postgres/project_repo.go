package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/project"
	"projectTracker/internal/models/task"
	repo "projectTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProjectRepo struct {
	s *Storage
}

func (s *Storage) Projects() *ProjectRepo {
	return &ProjectRepo{s: s}
}

func (r *ProjectRepo) Create(ctx context.Context, projectToCreate *project.Project) error {
	start := time.Now()

	query := `INSERT INTO projects
				(id, owner_id, title, description, created_at)
				VALUES ($1, $2, $3, $4, $5)`

	_, err := r.s.pool.Exec(ctx, query,
		projectToCreate.ID,
		projectToCreate.OwnerID,
		projectToCreate.Title,
		projectToCreate.Description,
		projectToCreate.CreatedAt,
	)

	if err != nil {
		logger.Error("Repository: Не удалось добавить проект", err)
		return fmt.Errorf("добавление проекта: %w", err)
	}

	warnIfSlow(start)
	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, projectToUpdate *project.Project) error {
	start := time.Now()

	// владелец и created_at не обновляются
	query := `UPDATE projects
				SET title = $1,
					description = $2
				WHERE id = $3 AND owner_id = $4`

	tag, err := r.s.pool.Exec(ctx, query,
		projectToUpdate.Title,
		projectToUpdate.Description,
		projectToUpdate.ID,
		projectToUpdate.OwnerID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить проект", err)
		return fmt.Errorf("обновление проекта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start)
	return nil
}

// Delete удаляет проект вместе с задачами в одной транзакции: либо исчезает
// всё, либо ничего.
func (r *ProjectRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	start := time.Now()

	tx, err := r.s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("открытие транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачи проекта", err)
		return fmt.Errorf("удаление задач проекта: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		logger.Error("Repository: Не удалось удалить проект", err)
		return fmt.Errorf("удаление проекта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// чужой или несуществующий проект: откатываемся, задачи остаются
		return repo.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("фиксация транзакции: %w", err)
	}

	warnIfSlow(start)
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*project.Project, error) {
	start := time.Now()

	query := `SELECT id, owner_id, title, description, created_at
				FROM projects
				WHERE id = $1 AND owner_id = $2`

	projectToGet := &project.Project{}
	err := r.s.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&projectToGet.ID,
		&projectToGet.OwnerID,
		&projectToGet.Title,
		&projectToGet.Description,
		&projectToGet.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить проект", err)
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	warnIfSlow(start)
	return projectToGet, nil
}

func (r *ProjectRepo) GetWithTasks(ctx context.Context, id, ownerID uuid.UUID) (*project.Project, []*task.Task, error) {
	projectToGet, err := r.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()

	query := `SELECT id, project_id, title, description, due_date, is_completed, created_at, completed_at
				FROM tasks
				WHERE project_id = $1
				ORDER BY created_at DESC, id DESC`

	rows, err := r.s.pool.Query(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, nil, err
	}

	warnIfSlow(start)
	return projectToGet, tasks, nil
}

func (r *ProjectRepo) GetPage(ctx context.Context, ownerID uuid.UUID, page, limit int, search string) ([]*project.Stats, int, error) {
	start := time.Now()
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*)
					FROM projects
					WHERE owner_id = $1
					AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`

	var total int
	if err := r.s.pool.QueryRow(ctx, countQuery, ownerID, search).Scan(&total); err != nil {
		logger.Error("Repository: Не удалось посчитать проекты", err)
		return nil, 0, fmt.Errorf("подсчёт проектов: %w", err)
	}

	query := `SELECT p.id, p.owner_id, p.title, p.description, p.created_at,
					COUNT(t.id) AS total_tasks,
					COUNT(t.id) FILTER (WHERE t.is_completed) AS completed_tasks
				FROM projects p
				LEFT JOIN tasks t ON t.project_id = p.id
				WHERE p.owner_id = $1
				AND ($2 = '' OR p.title ILIKE '%' || $2 || '%' OR p.description ILIKE '%' || $2 || '%')
				GROUP BY p.id
				ORDER BY p.created_at DESC, p.id DESC
				LIMIT $3 OFFSET $4`

	rows, err := r.s.pool.Query(ctx, query, ownerID, search, limit, offset)
	if err != nil {
		logger.Error("Repository: Не удалось получить проекты", err)
		return nil, 0, fmt.Errorf("получение проектов: %w", err)
	}
	defer rows.Close()

	result := []*project.Stats{}
	for rows.Next() {
		p := &project.Project{}
		stats := &project.Stats{Project: p}

		err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Title,
			&p.Description,
			&p.CreatedAt,
			&stats.TotalTasks,
			&stats.CompletedTasks,
		)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования проекта", zap.Error(err))
			continue
		}
		result = append(result, stats)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, 0, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnIfSlow(start)
	return result, total, nil
}
