package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wallblue4/tustockya-backend/internal/config"
	"github.com/wallblue4/tustockya-backend/internal/dto"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/service"
)

func buildAuthSvc(t *testing.T) (service.AuthService, *stubUserRepo, *model.User) {
	t.Helper()
	repo := newStubUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	locID := uuid.New()
	user := &model.User{
		ID:           uuid.New(),
		Email:        "seller@tustockya.com",
		FirstName:    "Sofia",
		LastName:     "Vendedora",
		PasswordHash: string(hash),
		Role:         model.RoleSeller,
		LocationID:   &locID,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo, user
}

func TestLogin_Succeeds(t *testing.T) {
	svc, _, user := buildAuthSvc(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	require.NotNil(t, resp.User.LocationID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, user := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@tustockya.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestRefresh_IssuesNewTokens(t *testing.T) {
	svc, _, user := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, user.ID.String(), refreshed.User.ID)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	svc, _, user := buildAuthSvc(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	user.Active = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestMe_Missing(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	_, err := svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
