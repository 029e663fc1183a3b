package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suraksha-setu/relief-service/internal/auth"
	"github.com/suraksha-setu/relief-service/internal/config"
	"github.com/suraksha-setu/relief-service/internal/domain"
	"github.com/suraksha-setu/relief-service/internal/repository/repositorytest"
	apperrors "github.com/suraksha-setu/relief-service/pkg/util"
)

func newTestAuthService() (*AuthService, *repositorytest.UserStore) {
	users := repositorytest.NewUserStore()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4
	return NewAuthService(cfg, users), users
}

func TestRegister_IssuesWorkingToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, token, exp, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleVolunteer)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, domain.RoleVolunteer, user.Role)
	assert.True(t, user.IsAvailable)
	assert.Equal(t, domain.SafetyStatusUnknown, user.SafetyStatus.Status)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleVolunteer, claims.Role)
}

func TestRegister_UnknownRoleFallsBackToUser(t *testing.T) {
	svc, _ := newTestAuthService()

	user, _, _, err := svc.Register(context.Background(), "Ravi", "ravi@example.com", "secret123", domain.Role("SUPERADMIN"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Imposter", "asha@example.com", "other456", domain.RoleUser)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "user already exists", domainErr.Message)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "asha@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "invalid email or password", domainErr.Message)
}

func TestLogin_SuspendedAccount(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.SetSuspension(ctx, user.ID.Hex(), true)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "asha@example.com", "secret123")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "account suspended", domainErr.Message)

	stored, err := users.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsSuspended)
}

func TestUpdateProfile_ReissuesToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, oldToken, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	updated, newToken, _, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdateInput{Name: "Asha K"})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.NotEmpty(t, newToken)

	// Earlier tokens are not invalidated by a profile update.
	_, err = svc.TokenManager().ParseToken(oldToken)
	assert.NoError(t, err)
}

func TestUpdateProfile_VolunteerFieldsIgnoredForUsers(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	unavailable := false
	updated, _, _, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdateInput{
		IsAvailable: &unavailable,
		Skills:      []string{"first-aid"},
		Bio:         "always around",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAvailable)
	assert.Empty(t, updated.Skills)
	assert.Empty(t, updated.Bio)
}

func TestUpdateProfile_VolunteerFieldsApplied(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Ravi", "ravi@example.com", "secret123", domain.RoleVolunteer)
	require.NoError(t, err)

	unavailable := false
	updated, _, _, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdateInput{
		IsAvailable: &unavailable,
		Skills:      []string{"first-aid", "rescue"},
		Bio:         "medic",
	})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, []string{"first-aid", "rescue"}, updated.Skills)
	assert.Equal(t, "medic", updated.Bio)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdateInput{Password: "newpass456"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "asha@example.com", "secret123")
	require.Error(t, err)

	_, _, _, err = svc.Login(ctx, "asha@example.com", "newpass456")
	assert.NoError(t, err)
}

func TestProfile_NotFound(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Profile(context.Background(), "not-a-hex-id")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListUsers_NewestFirst(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "First", "first@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)
	_, _, _, err = svc.Register(ctx, "Second", "second@example.com", "secret123", domain.RoleUser)
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Second", users[0].Name)
	assert.Equal(t, "First", users[1].Name)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	svc, _ := newTestAuthService()

	other := auth.NewTokenManager("different-secret", 60)
	token, _, err := other.GenerateToken("someid", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.TokenManager().ParseToken(token)
	assert.Error(t, err)
}
