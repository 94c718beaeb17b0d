package employee

import (
	"log/slog"

	"github.com/frahmantamala/roster-management/internal"
	employeeDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	// GetAll lists employees ordered by name; nil teamID means all teams.
	GetAll(teamID *int64) ([]*employeeDatamodel.Employee, error)
	// GetByEmpID returns (nil, nil) when absent; nil teamID matches any team.
	GetByEmpID(empID string, teamID *int64) (*employeeDatamodel.Employee, error)
	// ExistsOther reports whether empID is taken within the team by a row
	// other than excludeEmpID.
	ExistsOther(empID string, teamID int64, excludeEmpID string) (bool, error)
	Create(e *employeeDatamodel.Employee) error
	// RenameCascade updates the directory row and rewrites emp_id/team_id on
	// that employee's roster rows within the team, atomically.
	RenameCascade(oldEmpID string, teamID int64, newEmpID, name string) error
	// DeleteCascade removes the employee and that employee's roster rows for
	// the team only.
	DeleteCascade(empID string, teamID int64) error
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

func (s *Service) ListEmployees(teamID *int64) ([]EmployeeResponse, error) {
	employees, err := s.repo.GetAll(teamID)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toResponse(e))
	}
	return responses, nil
}

func (s *Service) GetEmployee(empID string, teamID *int64) (*EmployeeResponse, error) {
	e, err := s.repo.GetByEmpID(empID, teamID)
	if err != nil {
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if e == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	resp := toResponse(e)
	return &resp, nil
}

func (s *Service) CreateEmployee(teamID int64, dto UpsertEmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmpID(dto.EmpID, &teamID)
	if err != nil {
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("Employee ID already exists in this team", internal.ErrCodeEmployeeIDExists)
	}

	e := &employeeDatamodel.Employee{
		EmpID:  dto.EmpID,
		Name:   dto.Name,
		TeamID: teamID,
	}
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create employee", "emp_id", dto.EmpID, "team_id", teamID, "error", err)
		return nil, internal.ErrEmployeeIDExists.WithCause(err)
	}

	s.logger.Info("employee created", "emp_id", e.EmpID, "team_id", teamID)
	resp := toResponse(e)
	return &resp, nil
}

// UpdateEmployee renames an employee and cascades the new emp_id onto that
// employee's roster rows. A nil teamID (super_admin without an explicit
// team) keeps the employee's current team. Updates are pinned to the
// effective team; an emp_id absent from that team is not found rather
// than moved across teams.
func (s *Service) UpdateEmployee(empID string, teamID *int64, dto UpsertEmployeeDTO) (*EmployeeResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	effectiveTeam := teamID
	if effectiveTeam == nil {
		current, err := s.repo.GetByEmpID(empID, nil)
		if err != nil {
			return nil, internal.NewInternalError("employee lookup failed", err)
		}
		if current == nil {
			return nil, internal.ErrTeamRequired
		}
		effectiveTeam = &current.TeamID
	} else {
		current, err := s.repo.GetByEmpID(empID, effectiveTeam)
		if err != nil {
			return nil, internal.NewInternalError("employee lookup failed", err)
		}
		if current == nil {
			return nil, internal.ErrEmployeeNotFound
		}
	}

	taken, err := s.repo.ExistsOther(dto.EmpID, *effectiveTeam, empID)
	if err != nil {
		return nil, internal.NewInternalError("employee lookup failed", err)
	}
	if taken {
		return nil, internal.ErrEmployeeIDExists
	}

	if err := s.repo.RenameCascade(empID, *effectiveTeam, dto.EmpID, dto.Name); err != nil {
		s.logger.Error("failed to update employee", "emp_id", empID, "team_id", *effectiveTeam, "error", err)
		return nil, internal.ErrEmployeeIDExists.WithCause(err)
	}

	s.logger.Info("employee updated", "old_emp_id", empID, "new_emp_id", dto.EmpID, "team_id", *effectiveTeam)
	return &EmployeeResponse{EmpID: dto.EmpID, Name: dto.Name, TeamID: *effectiveTeam}, nil
}

func (s *Service) DeleteEmployee(empID string, teamID int64) error {
	if err := s.repo.DeleteCascade(empID, teamID); err != nil {
		s.logger.Error("failed to delete employee", "emp_id", empID, "team_id", teamID, "error", err)
		return internal.NewInternalError("failed to delete employee", err)
	}
	s.logger.Info("employee deleted", "emp_id", empID, "team_id", teamID)
	return nil
}

func (s *Service) EmployeeExists(empID string, teamID int64) (bool, error) {
	e, err := s.repo.GetByEmpID(empID, &teamID)
	if err != nil {
		return false, internal.NewInternalError("employee lookup failed", err)
	}
	return e != nil, nil
}

func toResponse(e *employeeDatamodel.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:     e.ID,
		EmpID:  e.EmpID,
		Name:   e.Name,
		TeamID: e.TeamID,
	}
}
