package user

import (
	"context"
)

// Directory resolves identity attributes of other users.
type Directory interface {
	GetByID(ctx context.Context, id string) (User, error)
	// GetDepartments returns the department of every known id; unknown ids are absent from the map.
	GetDepartments(ctx context.Context, ids []string) (map[string]Department, error)
}

type UserRepository interface {
	Directory
	Upsert(ctx context.Context, u User) (User, error)
	Count(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
}
