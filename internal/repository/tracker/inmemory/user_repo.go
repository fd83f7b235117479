package inmemory

import (
	"context"

	"projectTracker/internal/models/user"
	repo "projectTracker/internal/repository"

	"github.com/google/uuid"
)

// UserRepo - представление общего хранилища для пользователей.
type UserRepo struct {
	s *Storage
}

func (s *Storage) Users() *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(ctx context.Context, userToCreate *user.User) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.emailIndex[userToCreate.Email]; ok {
		return repo.ErrEmailTaken
	}

	r.s.users[userToCreate.ID] = userToCreate
	r.s.emailIndex[userToCreate.Email] = userToCreate.ID
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	id, ok := r.s.emailIndex[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	userToGet, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return userToGet, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	_, ok := r.s.emailIndex[email]
	return ok, nil
}
