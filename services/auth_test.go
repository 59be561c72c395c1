package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/komunitas-muda/backoffice/config"
	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminRepo struct {
	repositories.AdminUserRepository
	byEmail map[string]*models.AdminUser
	created []*models.AdminUser
}

func (s *stubAdminRepo) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	admin, ok := s.byEmail[email]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "admin user", ID: email}
	}
	return admin, nil
}

func (s *stubAdminRepo) Create(_ context.Context, admin *models.AdminUser) error {
	s.created = append(s.created, admin)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *stubAdminRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia-123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubAdminRepo{byEmail: map[string]*models.AdminUser{
		"admin@example.com": {
			ID:           1,
			Email:        "admin@example.com",
			Name:         "Admin",
			Role:         "admin",
			PasswordHash: string(hash),
		},
	}}
	svc := NewAuthService(repo, config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 30,
	})
	return svc, repo
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	token, admin, err := svc.Login(context.Background(), "admin@example.com", "rahasia-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int64(1), admin.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "admin@example.com", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "rahasia-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newAuthFixture(t)
	other := NewAuthService(&stubAdminRepo{}, config.AuthConfig{
		JWTSecret:       "another-secret",
		TokenTTLMinutes: 30,
	})

	token, _, err := svc.Login(context.Background(), "admin@example.com", "rahasia-123")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)

	admin := &models.AdminUser{Email: "baru@example.com", Name: "Baru", Role: "admin"}
	require.NoError(t, svc.Register(context.Background(), admin, "kata-sandi-kuat"))

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "kata-sandi-kuat", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("kata-sandi-kuat")))
}
