package auth

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/frahmantamala/roster-management/internal"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	// GetByUsername returns (nil, nil) when no such user exists.
	GetByUsername(username string) (*userDatamodel.User, error)
}

// SessionRepository is the durable token store. Tokens have no TTL; rows are
// removed on logout and when the owning user is deleted or deactivated.
type SessionRepository interface {
	Create(token, username string) error
	FindUsername(token string) (string, error)
	Touch(token string) error
	Delete(token string) error
	DeleteForUsername(username string) error
}

type Service struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	bcryptCost  int
	logger      *slog.Logger
}

func NewService(userRepo UserRepository, sessionRepo SessionRepository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Authenticate verifies credentials and mints an opaque session token.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.userRepo.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Error("login: user lookup failed", "username", dto.Username, "error", err)
		return nil, internal.NewInternalError("user lookup failed", err)
	}
	if dm == nil {
		return nil, internal.ErrInvalidCredentials
	}
	if !dm.Active {
		return nil, internal.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dm.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := GenerateRandomToken()
	if err != nil {
		return nil, internal.NewInternalError("token generation failed", err)
	}
	if err := s.sessionRepo.Create(token, dm.Username); err != nil {
		s.logger.Error("login: session persist failed", "username", dm.Username, "error", err)
		return nil, internal.NewInternalError("session persist failed", err)
	}

	s.logger.Info("user logged in", "username", dm.Username, "role", dm.Role)
	return &LoginResponse{
		Token:    token,
		Username: dm.Username,
		Role:     dm.Role,
		TeamID:   dm.TeamID,
	}, nil
}

// UserForToken resolves a session token to its live user record.
func (s *Service) UserForToken(token string) (*User, error) {
	username, err := s.sessionRepo.FindUsername(token)
	if err != nil {
		s.logger.Error("session lookup failed", "error", err)
		return nil, internal.ErrInvalidToken
	}
	if username == "" {
		return nil, internal.ErrInvalidToken
	}

	dm, err := s.userRepo.GetByUsername(username)
	if err != nil || dm == nil {
		return nil, internal.ErrInvalidToken
	}
	if !dm.Active {
		return nil, internal.ErrAccountDisabled
	}

	// best-effort; a failed touch never fails the request
	if err := s.sessionRepo.Touch(token); err != nil {
		s.logger.Warn("session touch failed", "username", username, "error", err)
	}

	return FromDataModel(dm), nil
}

// Logout removes the session row. Session-table maintenance is best-effort:
// failures are logged, never surfaced.
func (s *Service) Logout(token string) {
	if err := s.sessionRepo.Delete(token); err != nil {
		s.logger.Error("logout: session delete failed", "error", err)
	}
}

// RevokeSessionsFor drops every session of a username. Used when a user is
// deleted or deactivated.
func (s *Service) RevokeSessionsFor(username string) {
	if err := s.sessionRepo.DeleteForUsername(username); err != nil {
		s.logger.Error("session revocation failed", "username", username, "error", err)
	}
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateRandomToken generates a cryptographically secure random token.
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
