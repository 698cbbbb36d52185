package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank-backend/shared/database/models"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(userID, models.RoleDonor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, models.RoleDonor, claims.Role)
	assert.False(t, IsTokenExpired(token))
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT(uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	// Corrupt the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "invalidsignature"

	_, err = ValidateJWT(tampered)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
	assert.True(t, IsTokenExpired("not-a-token"))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("donor@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("   "))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("123456"))
	assert.Error(t, ValidatePassword("12345"))
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("City Hospital", "location"))

	err := ValidateRequired("  ", "location")
	require.Error(t, err)
	assert.Equal(t, "location is required", err.Error())
}
