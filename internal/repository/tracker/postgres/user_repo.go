package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projectTracker/internal/models/user"
	repo "projectTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepo struct {
	s *Storage
}

func (s *Storage) Users() *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(ctx context.Context, userToCreate *user.User) error {
	start := time.Now()

	query := `INSERT INTO users
				(id, email, name, password_hash, created_at)
				VALUES ($1, $2, $3, $4, $5)`

	_, err := r.s.pool.Exec(ctx, query,
		userToCreate.ID,
		userToCreate.Email,
		userToCreate.Name,
		userToCreate.PasswordHash,
		userToCreate.CreatedAt,
	)

	if err != nil {
		// 23505 - нарушение уникальности email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repo.ErrEmailTaken
		}
		return fmt.Errorf("добавление пользователя: %w", err)
	}

	warnIfSlow(start)
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	start := time.Now()

	query := `SELECT id, email, name, password_hash, created_at
				FROM users
				WHERE email = $1`

	userToGet := &user.User{}
	err := r.s.pool.QueryRow(ctx, query, email).Scan(
		&userToGet.ID,
		&userToGet.Email,
		&userToGet.Name,
		&userToGet.PasswordHash,
		&userToGet.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	warnIfSlow(start)
	return userToGet, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	start := time.Now()

	query := `SELECT id, email, name, password_hash, created_at
				FROM users
				WHERE id = $1`

	userToGet := &user.User{}
	err := r.s.pool.QueryRow(ctx, query, id).Scan(
		&userToGet.ID,
		&userToGet.Email,
		&userToGet.Name,
		&userToGet.PasswordHash,
		&userToGet.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	warnIfSlow(start)
	return userToGet, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.s.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("проверка email: %w", err)
	}
	return exists, nil
}
