package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediClaim/models"
)

func TestGenerateClaimNumberFormat(t *testing.T) {
	format := regexp.MustCompile(`^CLM-\d{6}-\d{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := GenerateClaimNumber()
		assert.Regexp(t, format, n)
		seen[n] = true
	}
	// 50 draws over a million-value random suffix should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination("", "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = ParsePagination("abc", "-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = ParsePagination("2", "10")
	assert.Equal(t, 10, p.Offset())

	p = ParsePagination("1", "5000")
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestTotalPages(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10}
	assert.Equal(t, int64(3), p.TotalPages(25))
	assert.Equal(t, int64(1), p.TotalPages(10))
	assert.Equal(t, int64(2), p.TotalPages(11))
	assert.Equal(t, int64(0), p.TotalPages(0))
}

func TestPagedResultEnvelope(t *testing.T) {
	p := Pagination{Page: 2, Limit: 10}
	res := NewPagedResult([]int{1, 2, 3}, p, 25)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, int64(25), res.Total)
	assert.Equal(t, int64(3), res.TotalPages)
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword("alllowercase1!"), ErrPasswordNotComplex)
	assert.ErrorIs(t, ValidatePassword("NoDigitsHere!"), ErrPasswordNotComplex)
	assert.NoError(t, ValidatePassword("Sound&Valid1"))
}

func TestValidateUserData(t *testing.T) {
	user := models.User{
		Email:    "pat@example.com",
		Name:     "Pat Doe",
		Role:     models.RolePatient,
		Password: "Sound&Valid1",
	}
	require.NoError(t, ValidateUserData(user))

	bad := user
	bad.Email = "not-an-email"
	assert.Error(t, ValidateUserData(bad))

	bad = user
	bad.Role = models.Role("ADMIN")
	assert.Error(t, ValidateUserData(bad))

	bad = user
	bad.Password = "weak"
	assert.Error(t, ValidateUserData(bad))
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Sound&Valid1")
	require.NoError(t, err)
	assert.NotEqual(t, "Sound&Valid1", hashed)
	assert.True(t, CheckPassword(hashed, "Sound&Valid1"))
	assert.False(t, CheckPassword(hashed, "WrongPass1!"))
}
