package user

import (
	"log/slog"

	"github.com/frahmantamala/roster-management/internal"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByUsername(username string) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
	Delete(id int64) error
	UpdatePasswordHash(username, hash string) (int64, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// SessionRevoker drops a user's sessions when the account is deleted or
// deactivated. Revocation is best-effort and never fails the request.
type SessionRevoker interface {
	RevokeSessionsFor(username string)
}

type Service struct {
	repo     RepositoryAPI
	hasher   PasswordHasher
	sessions SessionRevoker
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *Service) ListUsers() ([]UserResponse, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}
	return responses, nil
}

func (s *Service) CreateUser(dto CreateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !userDatamodel.ValidRole(dto.Role) {
		return nil, internal.NewValidationError("Invalid role", internal.ErrCodeInvalidRole)
	}

	existing, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("user lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrUsernameExists
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	u := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: hash,
		Role:         dto.Role,
		TeamID:       dto.TeamID,
		Active:       true,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "username", dto.Username, "error", err)
		return nil, internal.ErrUsernameExists.WithCause(err)
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Role != "" && !userDatamodel.ValidRole(dto.Role) {
		return nil, internal.NewValidationError("Invalid role", internal.ErrCodeInvalidRole)
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("user lookup failed", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}

	if other, err := s.repo.GetByUsername(dto.Username); err != nil {
		return nil, internal.NewInternalError("user lookup failed", err)
	} else if other != nil && other.ID != id {
		return nil, internal.ErrUsernameExists
	}

	wasActive := u.Active
	oldUsername := u.Username

	u.Username = dto.Username
	if dto.Role != "" {
		u.Role = dto.Role
	}
	u.TeamID = dto.TeamID
	u.Active = dto.Active == nil || *dto.Active

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, internal.ErrUsernameExists.WithCause(err)
	}

	if wasActive && !u.Active {
		s.sessions.RevokeSessionsFor(oldUsername)
	}
	if oldUsername != u.Username {
		s.sessions.RevokeSessionsFor(oldUsername)
	}

	resp := toResponse(u)
	return &resp, nil
}

func (s *Service) DeleteUser(id int64) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("user lookup failed", err)
	}
	if u == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.sessions.RevokeSessionsFor(u.Username)
	s.logger.Info("user deleted", "user_id", id, "username", u.Username)
	return nil
}

func (s *Service) ResetPassword(username string, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return internal.NewInternalError("password hashing failed", err)
	}

	updated, err := s.repo.UpdatePasswordHash(username, hash)
	if err != nil {
		s.logger.Error("failed to reset password", "username", username, "error", err)
		return internal.NewInternalError("failed to reset password", err)
	}
	if updated == 0 {
		return internal.ErrUserNotFound
	}

	s.logger.Info("password reset", "username", username)
	return nil
}

func toResponse(u *userDatamodel.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		TeamID:    u.TeamID,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
