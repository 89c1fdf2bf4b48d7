package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/session"
	"github.com/lammatna/lammatna-backend/pkg/hash"
	"github.com/lammatna/lammatna-backend/pkg/store"
)

func newAuthTestEnv(t *testing.T) (*AuthService, *repository.UserRepository, *session.Manager) {
	t.Helper()
	kv := store.NewMemoryStore()
	userRepo := repository.NewUserRepository(kv)
	sessions := session.NewManager(kv, 30*time.Minute)
	return NewAuthService(userRepo, sessions, zap.NewNop()), userRepo, sessions
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
}

func TestRegisterStoresDigestNotPlaintext(t *testing.T) {
	svc, userRepo, _ := newAuthTestEnv(t)

	user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NotEqual(t, "password1", user.PasswordHash)
	require.Equal(t, hash.Digest("password1"), user.PasswordHash)

	stored, err := userRepo.GetByEmail("a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "password1", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthTestEnv(t)

	cases := []struct {
		name  string
		edit  func(*models.RegisterRequest)
		field string
	}{
		{"empty username", func(r *models.RegisterRequest) { r.Username = "" }, "username"},
		{"short username", func(r *models.RegisterRequest) { r.Username = "ab" }, "username"},
		{"bad username chars", func(r *models.RegisterRequest) { r.Username = "bad!name" }, "username"},
		{"empty email", func(r *models.RegisterRequest) { r.Email = "" }, "email"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"empty password", func(r *models.RegisterRequest) { r.Password = ""; r.ConfirmPassword = "" }, "password"},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short1"; r.ConfirmPassword = "short1" }, "password"},
		{"mismatched confirmation", func(r *models.RegisterRequest) { r.ConfirmPassword = "different1" }, "confirmPassword"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := registerRequest()
			tc.edit(&req)

			_, err := svc.Register(req)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthTestEnv(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	// Same email, different username and case.
	dup := registerRequest()
	dup.Username = "someone-else"
	dup.Email = "A@X.COM"
	_, err = svc.Register(dup)
	require.ErrorIs(t, err, models.ErrDuplicateEmail)

	// Same username in different case, different email.
	dup = registerRequest()
	dup.Username = "ALICE"
	dup.Email = "other@x.com"
	_, err = svc.Register(dup)
	require.ErrorIs(t, err, models.ErrDuplicateUsername)
}

func TestLoginScenario(t *testing.T) {
	svc, _, sessions := newAuthTestEnv(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	user, err := svc.Login("a@x.com", "password1")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	logged, ok := sessions.Current()
	require.True(t, ok)
	require.Equal(t, "a@x.com", logged)

	_, err = svc.Login("a@x.com", "wrongpass")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Unknown email fails identically to a wrong password.
	_, err = svc.Login("ghost@x.com", "password1")
	require.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Email is normalized to lowercase.
	_, err = svc.Login("A@X.com", "password1")
	require.NoError(t, err)
}

func TestLogoutClearsSession(t *testing.T) {
	svc, _, sessions := newAuthTestEnv(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)
	_, err = svc.Login("a@x.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	_, ok := sessions.Current()
	require.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	svc, userRepo, sessions := newAuthTestEnv(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)
	_, err = svc.Login("a@x.com", "password1")
	require.NoError(t, err)

	// Keeping your own username/email is not a duplicate.
	updated, err := svc.UpdateProfile("a@x.com", models.UpdateProfileRequest{
		Username: "alice",
		Email:    "a@x.com",
	})
	require.NoError(t, err)
	require.Equal(t, hash.Digest("password1"), updated.PasswordHash)

	// Renaming the email moves the session pointer.
	updated, err = svc.UpdateProfile("a@x.com", models.UpdateProfileRequest{
		Username:    "alice2",
		Email:       "new@x.com",
		NewPassword: "password2",
	})
	require.NoError(t, err)
	require.Equal(t, "new@x.com", updated.Email)
	require.Equal(t, hash.Digest("password2"), updated.PasswordHash)

	logged, ok := sessions.Current()
	require.True(t, ok)
	require.Equal(t, "new@x.com", logged)

	_, err = userRepo.GetByEmail("a@x.com")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateProfileRejectsTakenIdentity(t *testing.T) {
	svc, _, _ := newAuthTestEnv(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	other := registerRequest()
	other.Username = "bob"
	other.Email = "b@x.com"
	_, err = svc.Register(other)
	require.NoError(t, err)

	_, err = svc.UpdateProfile("b@x.com", models.UpdateProfileRequest{
		Username: "bob",
		Email:    "a@x.com",
	})
	require.ErrorIs(t, err, models.ErrDuplicateEmail)

	_, err = svc.UpdateProfile("b@x.com", models.UpdateProfileRequest{
		Username: "Alice",
		Email:    "b@x.com",
	})
	require.ErrorIs(t, err, models.ErrDuplicateUsername)
}
