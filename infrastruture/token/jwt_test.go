package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtService(t *testing.T) {
	// Setup
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	secretKey := base64.URLEncoding.EncodeToString(bytes)
	issuer := "testIssuer"

	svc := NewJwtService(secretKey, issuer)

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		claims := map[string]interface{}{
			"userID":   "2b1b61e4-40b2-41a7-bb0b-6a7e7a44b2f9",
			"username": "solver_fan",
		}
		expDuration := time.Minute * 5

		token, err := svc.Generate(claims, expDuration)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		decoded, err := svc.Decode(token)
		assert.NoError(t, err)
		assert.Equal(t, "solver_fan", decoded["username"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"userID": "x"}, -time.Minute)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token signed with another key", func(t *testing.T) {
		other := NewJwtService("some-other-secret", issuer)
		token, err := other.Generate(map[string]interface{}{"userID": "x"}, time.Minute)
		assert.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})
}
