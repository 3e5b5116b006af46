package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	return &AuthService{
		Repo:      newTestRepo(t),
		JWTSecret: []byte("test-jwt-secret"),
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "bad email", email: "not-an-email", password: "long-enough"},
		{name: "short password", email: "pat@example.com", password: "short"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, tt.email, tt.password, "Pat")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "pat@example.com", "password123", "Pat")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "pat@example.com", "password123", "Pat")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login_IssuesToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	profile, err := svc.Register(ctx, "pat@example.com", "password123", "Pat")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "pat@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return svc.JWTSecret, nil
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID.String(), claims["sub"])
	assert.Equal(t, "user", claims["role"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "pat@example.com", "password123", "Pat")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "pat@example.com", "wrong-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
