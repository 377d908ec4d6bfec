package user

import (
	"fmt"
	"strings"
)

// ParseSeed reads a directory entry written as id:name:role:department.
// The name may be empty, in which case the id is used.
func ParseSeed(entry string) (User, error) {
	parts := strings.Split(strings.TrimSpace(entry), ":")
	if len(parts) != 4 {
		return User{}, fmt.Errorf("seed %q: want id:name:role:department", entry)
	}

	id := strings.TrimSpace(parts[0])
	if id == "" {
		return User{}, fmt.Errorf("seed %q: id is required", entry)
	}
	name := strings.TrimSpace(parts[1])
	if name == "" {
		name = id
	}

	role := Role(strings.TrimSpace(parts[2]))
	if !role.Valid() {
		return User{}, fmt.Errorf("seed %q: %w", entry, ErrInvalidRole)
	}
	department := Department(strings.TrimSpace(parts[3]))
	if !department.Valid() {
		return User{}, fmt.Errorf("seed %q: %w", entry, ErrInvalidDepartment)
	}

	return User{
		ID:         id,
		FirstName:  name,
		Role:       role,
		Department: department,
	}, nil
}
