package settings

import (
	"log/slog"

	"github.com/frahmantamala/roster-management/internal"
	settingDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/setting"
)

type RepositoryAPI interface {
	GetAll() ([]*settingDatamodel.Setting, error)
	Upsert(key, value string) error
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

// GetSettings returns all settings as a flat key/value map.
func (s *Service) GetSettings() (map[string]string, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load settings", "error", err)
		return nil, internal.NewInternalError("failed to load settings", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *Service) SetSetting(key, value string) error {
	if err := s.repo.Upsert(key, value); err != nil {
		s.logger.Error("failed to store setting", "key", key, "error", err)
		return internal.NewInternalError("failed to store setting", err)
	}
	s.logger.Info("setting updated", "key", key)
	return nil
}
