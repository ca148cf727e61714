package repositories

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediClaim/models"
	"MediClaim/utils"
)

func TestCachedUserKeepsPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	entry := cachedUser{
		User: models.User{
			ID:       "user-1",
			Email:    "patient@example.com",
			Password: hash,
			Name:     "Pat Example",
			Role:     models.RolePatient,
		},
		PasswordHash: hash,
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var cached cachedUser
	require.NoError(t, json.Unmarshal(raw, &cached))

	cached.User.Password = cached.PasswordHash
	assert.Equal(t, hash, cached.User.Password)
	assert.True(t, utils.CheckPassword(cached.User.Password, "Sup3rSecret!"))
}

func TestUserAPIJSONOmitsPassword(t *testing.T) {
	hash, err := utils.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	raw, err := json.Marshal(models.User{ID: "user-1", Password: hash})
	require.NoError(t, err)

	assert.NotContains(t, string(raw), hash)
	assert.NotContains(t, string(raw), "password")
}
