package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	tokenTTL  = 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService valida al admin configurado por env (usuario + hash bcrypt)
// y emite el JWT para las rutas /admin.
type AuthService struct {
	adminUser    string
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

func NewAuthService(adminUser, passwordHash, secret string) *AuthService {
	return &AuthService{
		adminUser:    adminUser,
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(secret),
		now:          time.Now,
	}
}

// ================== LOGIN ==================

func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	// sin hash configurado no hay login posible
	if len(s.passwordHash) == 0 || username != s.adminUser {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
