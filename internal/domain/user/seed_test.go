package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	u, err := ParseSeed(" u-1:Maya:manager:sales ")
	require.NoError(t, err)
	assert.Equal(t, User{ID: "u-1", FirstName: "Maya", Role: RoleManager, Department: DepartmentSales}, u)

	u, err = ParseSeed("u-2::employee:production")
	require.NoError(t, err)
	assert.Equal(t, "u-2", u.DisplayName())

	tests := []struct {
		entry string
		want  error
	}{
		{"u-3:Eka:intern:sales", ErrInvalidRole},
		{"u-3:Eka:employee:marketing", ErrInvalidDepartment},
	}
	for _, tt := range tests {
		_, err := ParseSeed(tt.entry)
		assert.ErrorIs(t, err, tt.want, tt.entry)
	}

	for _, entry := range []string{"", "u-4:Eka:employee", ":Eka:employee:sales"} {
		_, err := ParseSeed(entry)
		assert.Error(t, err, entry)
	}
}
