package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByID implements user.Directory.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, first_name, last_name, role, department, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var (
		u          user.User
		role       string
		department string
	)
	err := q.QueryRow(ctx, query, id).Scan(&u.ID, &u.FirstName, &u.LastName, &role, &department, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	u.Role = user.Role(role)
	u.Department = user.Department(department)
	return u, nil
}

// GetDepartments implements user.Directory. Unknown ids are left out of the map.
func (r *userRepositoryImpl) GetDepartments(ctx context.Context, ids []string) (map[string]user.Department, error) {
	departments := make(map[string]user.Department, len(ids))
	if len(ids) == 0 {
		return departments, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, department FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("select departments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, department string
		if err := rows.Scan(&id, &department); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments[id] = user.Department(department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}

	return departments, nil
}

// Upsert implements user.UserRepository.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, first_name, last_name, role, department)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			department = EXCLUDED.department,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, u.ID, u.FirstName, u.LastName, string(u.Role), string(u.Department)).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

// Count implements user.UserRepository.
func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// CountDepartments implements user.UserRepository.
func (r *userRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, `SELECT COUNT(DISTINCT department) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return count, nil
}
