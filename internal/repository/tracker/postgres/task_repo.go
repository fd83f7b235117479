package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projectTracker/internal/logger"
	"projectTracker/internal/models/task"
	repo "projectTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TaskRepo struct {
	s *Storage
}

func (s *Storage) Tasks() *TaskRepo {
	return &TaskRepo{s: s}
}

func scanTasks(rows pgx.Rows) ([]*task.Task, error) {
	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}

		err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.Title,
			&t.Description,
			&t.DueDate,
			&t.IsCompleted,
			&t.CreatedAt,
			&t.CompletedAt,
		)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepo) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, project_id, title, description, due_date, is_completed, created_at, completed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.s.pool.Exec(ctx, query,
		taskToCreate.ID,
		taskToCreate.ProjectID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.DueDate,
		taskToCreate.IsCompleted,
		taskToCreate.CreatedAt,
		taskToCreate.CompletedAt,
	)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", err)
	}

	warnIfSlow(start)
	return nil
}

func (r *TaskRepo) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
				SET title = $1,
					description = $2,
					due_date = $3,
					is_completed = $4,
					completed_at = $5
				WHERE id = $6 AND project_id = $7`

	tag, err := r.s.pool.Exec(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.DueDate,
		taskToUpdate.IsCompleted,
		taskToUpdate.CompletedAt,
		taskToUpdate.ID,
		taskToUpdate.ProjectID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start)
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id, projectID uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM tasks
				WHERE id = $1 AND project_id = $2`

	tag, err := r.s.pool.Exec(ctx, query, id, projectID)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start)
	return nil
}

// GetByID всегда ищет в паре с project_id: задача под другим проектом
// неотличима от несуществующей.
func (r *TaskRepo) GetByID(ctx context.Context, id, projectID uuid.UUID) (*task.Task, error) {
	start := time.Now()

	query := `SELECT id, project_id, title, description, due_date, is_completed, created_at, completed_at
				FROM tasks
				WHERE id = $1 AND project_id = $2`

	taskToGet := &task.Task{}
	err := r.s.pool.QueryRow(ctx, query, id, projectID).Scan(
		&taskToGet.ID,
		&taskToGet.ProjectID,
		&taskToGet.Title,
		&taskToGet.Description,
		&taskToGet.DueDate,
		&taskToGet.IsCompleted,
		&taskToGet.CreatedAt,
		&taskToGet.CompletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	warnIfSlow(start)
	return taskToGet, nil
}

func (r *TaskRepo) GetPage(ctx context.Context, projectID uuid.UUID, page, limit int, filter task.Filter) ([]*task.Task, int, error) {
	start := time.Now()
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*)
					FROM tasks
					WHERE project_id = $1
					AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
					AND ($3::boolean IS NULL OR is_completed = $3)`

	var total int
	if err := r.s.pool.QueryRow(ctx, countQuery, projectID, filter.Search, filter.IsCompleted).Scan(&total); err != nil {
		logger.Error("Repository: Не удалось посчитать задачи", err)
		return nil, 0, fmt.Errorf("подсчёт задач: %w", err)
	}

	query := `SELECT id, project_id, title, description, due_date, is_completed, created_at, completed_at
				FROM tasks
				WHERE project_id = $1
				AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
				AND ($3::boolean IS NULL OR is_completed = $3)
				ORDER BY created_at DESC, id DESC
				LIMIT $4 OFFSET $5`

	rows, err := r.s.pool.Query(ctx, query, projectID, filter.Search, filter.IsCompleted, limit, offset)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, 0, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	warnIfSlow(start)
	return tasks, total, nil
}
