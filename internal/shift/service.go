package shift

import (
	"log/slog"

	"github.com/frahmantamala/roster-management/internal"
	shiftDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/shift"
)

type RepositoryAPI interface {
	// GetAll lists shifts ordered by shift_name; shiftType "" means all.
	GetAll(shiftType string) ([]*shiftDatamodel.Shift, error)
	GetByID(id int64) (*shiftDatamodel.Shift, error)
	GetByCode(code string) (*shiftDatamodel.Shift, error)
	Create(s *shiftDatamodel.Shift) error
	Update(s *shiftDatamodel.Shift) error
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

func (s *Service) ListShifts(shiftType string) ([]ShiftResponse, error) {
	shifts, err := s.repo.GetAll(shiftType)
	if err != nil {
		s.logger.Error("failed to list shifts", "error", err)
		return nil, internal.NewInternalError("failed to list shifts", err)
	}

	responses := make([]ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, toResponse(sh))
	}
	return responses, nil
}

func (s *Service) GetShift(id int64) (*ShiftResponse, error) {
	sh, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("shift lookup failed", err)
	}
	if sh == nil {
		return nil, internal.ErrShiftNotFound
	}
	resp := toResponse(sh)
	return &resp, nil
}

func (s *Service) CreateShift(dto UpsertShiftDTO) (*ShiftResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(dto.ShiftCode)
	if err != nil {
		return nil, internal.NewInternalError("shift lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrShiftCodeExists
	}

	sh := &shiftDatamodel.Shift{
		ShiftName:   dto.ShiftName,
		ShiftCode:   dto.ShiftCode,
		Duration:    dto.Duration,
		Type:        dto.Type,
		ShiftTiming: dto.ShiftTiming,
	}
	if err := s.repo.Create(sh); err != nil {
		s.logger.Error("failed to create shift", "shift_code", dto.ShiftCode, "error", err)
		return nil, internal.ErrShiftCodeExists.WithCause(err)
	}

	s.logger.Info("shift created", "shift_id", sh.ID, "shift_code", sh.ShiftCode)
	resp := toResponse(sh)
	return &resp, nil
}

// UpdateShift rewrites a shift definition. Roster rows keep the display
// string they were assigned with; a rename never rewrites history.
func (s *Service) UpdateShift(id int64, dto UpsertShiftDTO) (*ShiftResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sh, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("shift lookup failed", err)
	}
	if sh == nil {
		return nil, internal.ErrShiftNotFound
	}

	if other, err := s.repo.GetByCode(dto.ShiftCode); err != nil {
		return nil, internal.NewInternalError("shift lookup failed", err)
	} else if other != nil && other.ID != id {
		return nil, internal.ErrShiftCodeExists
	}

	sh.ShiftName = dto.ShiftName
	sh.ShiftCode = dto.ShiftCode
	sh.Duration = dto.Duration
	sh.Type = dto.Type
	sh.ShiftTiming = dto.ShiftTiming

	if err := s.repo.Update(sh); err != nil {
		s.logger.Error("failed to update shift", "shift_id", id, "error", err)
		return nil, internal.ErrShiftCodeExists.WithCause(err)
	}

	resp := toResponse(sh)
	return &resp, nil
}

func (s *Service) DeleteShift(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete shift", "shift_id", id, "error", err)
		return internal.NewInternalError("failed to delete shift", err)
	}
	s.logger.Info("shift deleted", "shift_id", id)
	return nil
}

func toResponse(sh *shiftDatamodel.Shift) ShiftResponse {
	return ShiftResponse{
		ID:          sh.ID,
		ShiftName:   sh.ShiftName,
		ShiftCode:   sh.ShiftCode,
		Duration:    sh.Duration,
		Type:        sh.Type,
		ShiftTiming: sh.ShiftTiming,
	}
}
