package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

type authFixture struct {
	svc      *service.AuthService
	users    *fakeUserRepo
	patients *fakePatientRepo
	resets   *fakeResetRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	patients := newFakePatientRepo()
	resets := newFakeResetRepo()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "service-test-secret",
			TokenTTLHours:           1,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4, // min cost keeps the suite fast
		},
	}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:          users,
		PatientRepo:       patients,
		DoctorRepo:        newFakeDoctorRepo(),
		PasswordResetRepo: resets,
	})
	return &authFixture{svc: svc, users: users, patients: patients, resets: resets}
}

func TestRegisterPatient(t *testing.T) {
	f := newAuthFixture(t)

	user, token, expiresAt, err := f.svc.RegisterPatient(context.Background(), "  New@Example.COM ", "s3cret!pw", "New", "Person")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RolePatient, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret!pw", user.PasswordHash)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	// A demographic profile is created alongside the account.
	patient, err := f.patients.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, patient.UserID)

	claims, err := f.svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, domain.RolePatient, claims.Role)
}

func TestRegisterPatient_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, _, _, err := f.svc.RegisterPatient(context.Background(), "dup@example.com", "s3cret!pw", "", "")
	require.NoError(t, err)

	_, _, _, err = f.svc.RegisterPatient(context.Background(), "dup@example.com", "other!pw", "", "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", util.ToDomainError(err).Code)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	registered, _, _, err := f.svc.RegisterPatient(context.Background(), "login@example.com", "s3cret!pw", "", "")
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		user, token, _, err := f.svc.Login(context.Background(), "login@example.com", "s3cret!pw")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, _, _, err := f.svc.Login(context.Background(), "login@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", util.ToDomainError(err).Code)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, _, _, err := f.svc.Login(context.Background(), "nobody@example.com", "s3cret!pw")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", util.ToDomainError(err).Code)
	})

	t.Run("inactive_account", func(t *testing.T) {
		require.NoError(t, f.users.SetActive(context.Background(), registered.ID, false))
		defer func() {
			require.NoError(t, f.users.SetActive(context.Background(), registered.ID, true))
		}()
		_, _, _, err := f.svc.Login(context.Background(), "login@example.com", "s3cret!pw")
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", util.ToDomainError(err).Code)
	})
}

func TestLogout_IsStatelessNoop(t *testing.T) {
	f := newAuthFixture(t)
	_, token, _, err := f.svc.RegisterPatient(context.Background(), "out@example.com", "s3cret!pw", "", "")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), token))

	// The credential stays verifiable; only deactivation revokes access.
	_, err = f.svc.TokenManager().Verify(token)
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	_, _, _, err := f.svc.RegisterPatient(context.Background(), "reset@example.com", "oldpassword", "", "")
	require.NoError(t, err)

	token, err := f.svc.RequestPasswordReset(context.Background(), "reset@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	require.NoError(t, f.svc.ConfirmPasswordReset(context.Background(), token.Token, "newpassword"))

	_, _, _, err = f.svc.Login(context.Background(), "reset@example.com", "oldpassword")
	assert.Error(t, err)
	_, _, _, err = f.svc.Login(context.Background(), "reset@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestConfirmPasswordReset_SingleUse(t *testing.T) {
	f := newAuthFixture(t)
	_, _, _, err := f.svc.RegisterPatient(context.Background(), "once@example.com", "oldpassword", "", "")
	require.NoError(t, err)

	token, err := f.svc.RequestPasswordReset(context.Background(), "once@example.com")
	require.NoError(t, err)

	require.NoError(t, f.svc.ConfirmPasswordReset(context.Background(), token.Token, "firstnew"))

	err = f.svc.ConfirmPasswordReset(context.Background(), token.Token, "secondnew")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
}

func TestConfirmPasswordReset_Expired(t *testing.T) {
	f := newAuthFixture(t)
	user, _, _, err := f.svc.RegisterPatient(context.Background(), "late@example.com", "oldpassword", "", "")
	require.NoError(t, err)

	token, err := f.svc.RequestPasswordReset(context.Background(), "late@example.com")
	require.NoError(t, err)
	token.ExpiresAt = time.Now().Add(-time.Minute)

	err = f.svc.ConfirmPasswordReset(context.Background(), token.Token, "newpassword")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	_, _, _, err = f.svc.Login(context.Background(), user.Email, "oldpassword")
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user, _, _, err := f.svc.RegisterPatient(context.Background(), "change@example.com", "oldpassword", "", "")
	require.NoError(t, err)

	err = f.svc.ChangePassword(context.Background(), user.ID, "wrongcurrent", "newpassword")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", util.ToDomainError(err).Code)

	require.NoError(t, f.svc.ChangePassword(context.Background(), user.ID, "oldpassword", "newpassword"))

	_, _, _, err = f.svc.Login(context.Background(), "change@example.com", "newpassword")
	assert.NoError(t, err)
}
