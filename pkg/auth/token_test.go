package auth_test

import (
	"testing"

	"designhire-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")

	token, err := tm.Generate("user1", "applicant")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user1", claims.Subject)
	assert.Equal(t, "applicant", claims.UserType)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("secret-a").Generate("user1", "applicant")
	assert.NoError(t, err)

	_, err = auth.NewTokenManager("secret-b").Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := auth.NewTokenManager("test-secret").Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
