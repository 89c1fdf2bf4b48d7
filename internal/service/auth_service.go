package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/session"
	"github.com/lammatna/lammatna-backend/pkg/hash"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

// AuthService owns registration, credential verification and profile edits.
type AuthService struct {
	userRepo *repository.UserRepository
	sessions *session.Manager
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateIdentity(username, email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, models.NewValidationError("password", "required")
	}
	if len(req.Password) < 8 {
		return nil, models.NewValidationError("password", "must be at least 8 characters")
	}
	if req.Password != req.ConfirmPassword {
		return nil, models.NewValidationError("confirmPassword", "passwords do not match")
	}

	if err := s.checkUniqueness(username, email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash.Digest(req.Password),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", email))
	return user, nil
}

// Login verifies credentials and points the session at the matched user.
// Unknown email and wrong password fail identically.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if user.PasswordHash != hash.Digest(password) {
		return nil, models.ErrInvalidCredentials
	}

	if err := s.sessions.Login(user.Email); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("email", user.Email))
	return user, nil
}

func (s *AuthService) Logout() error {
	return s.sessions.Logout()
}

// UpdateProfile edits username/email and optionally the password. Uniqueness
// checks exclude the user's own record; the session pointer follows an email
// rename of the logged-in user.
//
// References elsewhere (gathering createdBy, participants, task assignedTo)
// are NOT rewritten when the email changes; they keep pointing at the old
// address, matching the original behavior.
func (s *AuthService) UpdateProfile(currentEmail string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(currentEmail)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateIdentity(username, email); err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(username, email, currentEmail); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if len(req.NewPassword) >= 8 {
		user.PasswordHash = hash.Digest(req.NewPassword)
	}

	if err := s.userRepo.Update(currentEmail, *user); err != nil {
		return nil, err
	}

	if logged, ok := s.sessions.Current(); ok && logged == currentEmail && email != currentEmail {
		if err := s.sessions.Login(email); err != nil {
			return nil, err
		}
	}

	s.logger.Info("profile updated", zap.String("email", email))
	return user, nil
}

func validateIdentity(username, email string) error {
	if username == "" {
		return models.NewValidationError("username", "required")
	}
	if !utils.IsValidUsername(username) {
		return models.NewValidationError("username", "letters, digits, spaces, _ and - only, 3 characters minimum")
	}
	if email == "" {
		return models.NewValidationError("email", "required")
	}
	if !utils.IsValidEmail(email) {
		return models.NewValidationError("email", "invalid email address")
	}
	return nil
}

func (s *AuthService) checkUniqueness(username, email, excludeEmail string) error {
	emailTaken, err := s.userRepo.EmailExists(email, excludeEmail)
	if err != nil {
		return err
	}
	if emailTaken {
		return models.ErrDuplicateEmail
	}
	usernameTaken, err := s.userRepo.UsernameExists(username, excludeEmail)
	if err != nil {
		return err
	}
	if usernameTaken {
		return models.ErrDuplicateUsername
	}
	return nil
}
