package team

import (
	"log/slog"

	"github.com/frahmantamala/roster-management/internal"
	teamDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/team"
)

type RepositoryAPI interface {
	GetAll() ([]*teamDatamodel.Team, error)
	GetByID(id int64) (*teamDatamodel.Team, error)
	GetByName(name string) (*teamDatamodel.Team, error)
	Create(team *teamDatamodel.Team) error
	Update(team *teamDatamodel.Team) error
	// Delete removes the team and clears team_id on its users.
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListTeams() ([]TeamResponse, error) {
	teams, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list teams", "error", err)
		return nil, internal.NewInternalError("failed to list teams", err)
	}

	responses := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, toResponse(t))
	}
	return responses, nil
}

func (s *Service) CreateTeam(dto UpsertTeamDTO) (*TeamResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, internal.NewInternalError("team lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrTeamNameExists
	}

	t := &teamDatamodel.Team{Name: dto.Name, Description: dto.Description}
	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create team", "name", dto.Name, "error", err)
		return nil, internal.ErrTeamNameExists.WithCause(err)
	}

	s.logger.Info("team created", "team_id", t.ID, "name", t.Name)
	resp := toResponse(t)
	return &resp, nil
}

func (s *Service) UpdateTeam(id int64, dto UpsertTeamDTO) (*TeamResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("team lookup failed", err)
	}
	if t == nil {
		return nil, internal.ErrTeamNotFound
	}

	if other, err := s.repo.GetByName(dto.Name); err != nil {
		return nil, internal.NewInternalError("team lookup failed", err)
	} else if other != nil && other.ID != id {
		return nil, internal.ErrTeamNameExists
	}

	t.Name = dto.Name
	t.Description = dto.Description
	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update team", "team_id", id, "error", err)
		return nil, internal.ErrTeamNameExists.WithCause(err)
	}

	resp := toResponse(t)
	return &resp, nil
}

func (s *Service) DeleteTeam(id int64) error {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("team lookup failed", err)
	}
	if t == nil {
		return internal.ErrTeamNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete team", "team_id", id, "error", err)
		return internal.NewInternalError("failed to delete team", err)
	}

	s.logger.Info("team deleted", "team_id", id, "name", t.Name)
	return nil
}

func toResponse(t *teamDatamodel.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
