package memory

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
)

type userRepositoryImpl struct {
	store *Store
}

func NewUserRepository(store *Store) user.UserRepository {
	return &userRepositoryImpl{store: store}
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepositoryImpl) GetDepartments(ctx context.Context, ids []string) (map[string]user.Department, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	departments := make(map[string]user.Department, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			departments[id] = u.Department
		}
	}
	return departments, nil
}

func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) (user.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if u.ID == "" {
		u.ID = newID()
	}
	if existing, ok := s.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	s.users[u.ID] = u

	return u, nil
}

func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.users)), nil
}

func (r *userRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[user.Department]struct{})
	for _, u := range s.users {
		seen[u.Department] = struct{}{}
	}
	return int64(len(seen)), nil
}
