package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/atelierlane/storefront/internal/auth"
	"github.com/atelierlane/storefront/internal/models"
	"github.com/atelierlane/storefront/internal/repo"
)

const accessTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.Profile, error) {
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if _, err := s.Repo.ProfileByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.Repo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	profile, err := s.Repo.ProfileByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !auth.CheckPassword(profile.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	role, err := s.Repo.RoleOf(ctx, profile.ID)
	if err != nil {
		role = "user"
	}

	claims := jwt.MapClaims{
		"sub":  profile.ID.String(),
		"role": role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}
