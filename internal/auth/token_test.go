package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/domain"
)

func TestVerifier_IssueAndVerify(t *testing.T) {
	v := NewVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "gpc-affidavit"})

	token, err := v.Issue("clerk@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "clerk@example.com", claims.Subject)
	assert.Equal(t, "gpc-affidavit", claims.Issuer)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "gpc-affidavit"})

	expired, err := v.Issue("clerk", -time.Minute)
	require.NoError(t, err)

	other, err := NewVerifier(config.AuthConfig{JWTSecret: "other", Issuer: "gpc-affidavit"}).Issue("clerk", time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := NewVerifier(config.AuthConfig{JWTSecret: "s3cret", Issuer: "someone-else"}).Issue("clerk", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong secret": other,
		"wrong issuer": wrongIssuer,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
