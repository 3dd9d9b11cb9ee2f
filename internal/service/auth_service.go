package service

import (
	"context"
	"fmt"

	"recruitment-service/internal/domain"
	"recruitment-service/internal/jwt"
	"recruitment-service/internal/my_errors"
)

// AuthService turns a bearer token issued by the identity provider into a caller identity.
type AuthService struct {
	jwtSecret string
}

func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{jwtSecret: jwtSecret}
}

func (s *AuthService) ValidateToken(_ context.Context, tokenString string) (domain.Identity, error) {
	claims, err := jwt.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("invalid token: %w", err)
	}

	userID := claims.Identity()
	if userID == "" {
		return domain.Identity{}, fmt.Errorf("user_id claim is empty: %w", my_errors.ErrInvalidToken)
	}

	roles := make([]domain.Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		role := domain.Role(r)
		if role.Valid() {
			roles = append(roles, role)
		}
	}

	return domain.Identity{UserID: userID, Roles: roles}, nil
}
