package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/komunitas-muda/backoffice/config"
	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AdminClaims is the JWT payload issued to back-office users.
type AdminClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService signs admin users in and issues the bearer tokens the
// middleware verifies.
type AuthService struct {
	admins   repositories.AdminUserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(admins repositories.AdminUserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		admins:   admins,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.AdminUser, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		var nfe *repositories.NotFoundError
		if errors.As(err, &nfe) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// Register creates an admin account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, admin *models.AdminUser, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	return s.admins.Create(ctx, admin)
}

// ChangePassword rehashes and stores a new password for an admin.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, password string) error {
	admin, err := s.admins.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	return s.admins.Update(ctx, admin)
}

func (s *AuthService) issueToken(admin *models.AdminUser) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		UserID: admin.ID,
		Email:  admin.Email,
		Role:   admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Subject:   admin.Email,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a bearer token.
func (s *AuthService) VerifyToken(tokenString string) (*AdminClaims, error) {
	claims := new(AdminClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
