package roster

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/frahmantamala/roster-management/internal"
	employeeDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/employee"
	rosterDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/roster"
	shiftDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/shift"
)

type RepositoryAPI interface {
	// DistinctDates returns the distinct roster dates covered by sel for a
	// team, ascending.
	DistinctDates(teamID int64, sel DateSelector) ([]string, error)
	// AvailableMonths lists every distinct year-month for a team, descending.
	AvailableMonths(teamID int64) ([]string, error)
	// EntriesInRange fetches all of a team's entries between two dates
	// inclusive, in one query.
	EntriesInRange(teamID int64, from, to string) ([]*rosterDatamodel.Entry, error)
	// LastFullShiftsBefore returns, per emp_id, the shift display string of
	// the most recent "Full Day" entry strictly before the given date.
	LastFullShiftsBefore(teamID int64, date string) (map[string]string, error)
	// ReplaceMonth atomically deletes an employee's entries for a month and
	// inserts the replacement rows.
	ReplaceMonth(teamID int64, empID, month string, entries []*rosterDatamodel.Entry) error
	GetEntry(empID, date string, teamID int64) (*rosterDatamodel.Entry, error)
	// UpdateEntry returns the number of rows affected.
	UpdateEntry(empID, date string, teamID int64, shiftText, status string) (int64, error)
	// DeleteMonth removes an employee's entries for a month, returning the count.
	DeleteMonth(empID string, teamID int64, month string) (int64, error)

	CountEmployees(teamID *int64) (int64, error)
	CountShifts() (int64, error)
	CountRosteredEmployees(teamID *int64) (int64, error)
}

// ShiftCatalog is the slice of the shift repository the roster needs.
type ShiftCatalog interface {
	GetByID(id int64) (*shiftDatamodel.Shift, error)
	GetAll(shiftType string) ([]*shiftDatamodel.Shift, error)
}

// EmployeeDirectory is the slice of the employee repository the roster needs.
type EmployeeDirectory interface {
	GetAll(teamID *int64) ([]*employeeDatamodel.Employee, error)
	GetByEmpID(empID string, teamID *int64) (*employeeDatamodel.Employee, error)
}

type Service struct {
	repo      RepositoryAPI
	shifts    ShiftCatalog
	employees EmployeeDirectory
	logger    *slog.Logger

	// genLocks serializes regeneration per (team, emp, month); concurrent
	// regeneration of the same month would otherwise interleave the
	// delete+insert pairs.
	genLocks keyedMutex
}

func NewService(repo RepositoryAPI, shifts ShiftCatalog, employees EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		shifts:    shifts,
		employees: employees,
		logger:    logger,
	}
}

// Generate expands a month into per-day entries for one employee, replacing
// any prior rows for that month. OFF dates win over half-day assignments.
func (s *Service) Generate(teamID int64, dto GenerateRosterDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	month, err := ParseMonth(dto.Month)
	if err != nil {
		return err
	}

	defaultShift, err := s.shifts.GetByID(dto.ShiftID)
	if err != nil {
		return internal.NewInternalError("shift lookup failed", err)
	}
	if defaultShift == nil {
		return internal.NewValidationError("Invalid shift ID", internal.ErrCodeInvalidReference)
	}
	defaultDisplay := defaultShift.Display()

	// map half-day dates to their shift snapshots; an unresolvable shift_id
	// drops the assignment so the date falls back to the default shift
	halfDisplay := make(map[string]string, len(dto.HalfDates))
	for _, half := range dto.HalfDates {
		sh, err := s.shifts.GetByID(half.ShiftID)
		if err != nil {
			return internal.NewInternalError("shift lookup failed", err)
		}
		if sh != nil {
			halfDisplay[half.Date] = sh.Display()
		}
	}

	emp, err := s.employees.GetByEmpID(dto.EmpID, &teamID)
	if err != nil {
		return internal.NewInternalError("employee lookup failed", err)
	}
	if emp == nil {
		return internal.NewValidationError("Employee not found in team", internal.ErrCodeInvalidReference)
	}

	offDates := make(map[string]struct{}, len(dto.OffDates))
	for _, d := range dto.OffDates {
		offDates[d] = struct{}{}
	}

	dates := MonthDates(month)
	entries := make([]*rosterDatamodel.Entry, 0, len(dates))
	for _, date := range dates {
		status := rosterDatamodel.StatusFullDay
		display := defaultDisplay

		if _, off := offDates[date]; off {
			status = rosterDatamodel.StatusOff
			display = rosterDatamodel.OffShiftDisplay
		} else if halfShift, ok := halfDisplay[date]; ok {
			status = rosterDatamodel.StatusHalfDay
			display = halfShift
		}

		entries = append(entries, &rosterDatamodel.Entry{
			EmpID:  dto.EmpID,
			Date:   date,
			Shift:  display,
			Status: status,
			TeamID: teamID,
		})
	}

	unlock := s.genLocks.lock(generationKey(teamID, dto.EmpID, dto.Month))
	defer unlock()

	if err := s.repo.ReplaceMonth(teamID, dto.EmpID, dto.Month, entries); err != nil {
		s.logger.Error("roster generation failed", "emp_id", dto.EmpID, "month", dto.Month, "team_id", teamID, "error", err)
		return internal.NewInternalError("roster generation failed", err)
	}

	s.logger.Info("roster generated",
		"emp_id", dto.EmpID,
		"month", dto.Month,
		"team_id", teamID,
		"days", len(entries),
		"off_days", len(dto.OffDates),
		"half_days", len(halfDisplay))
	return nil
}

// BuildMatrix assembles the date-by-employee grid. Every employee of the
// team appears even with no entries; missing cells carry empty strings.
func (s *Service) BuildMatrix(teamID int64, sel DateSelector) (*MatrixResponse, error) {
	dates, err := s.repo.DistinctDates(teamID, sel)
	if err != nil {
		s.logger.Error("failed to load roster dates", "team_id", teamID, "error", err)
		return nil, internal.NewInternalError("failed to load roster dates", err)
	}

	if len(dates) == 0 {
		return &MatrixResponse{Dates: []string{}, Roster: []MatrixRow{}, AvailableMonths: []string{}}, nil
	}

	months, err := s.repo.AvailableMonths(teamID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load roster months", err)
	}

	employees, err := s.employees.GetAll(&teamID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	cells, err := s.entriesByEmployee(teamID, dates)
	if err != nil {
		return nil, err
	}

	rows := make([]MatrixRow, 0, len(employees))
	for _, emp := range employees {
		row := MatrixRow{EmpID: emp.EmpID, Name: emp.Name, Shifts: make([]Cell, 0, len(dates))}
		for _, date := range dates {
			if entry, ok := cells[emp.EmpID][date]; ok {
				row.Shifts = append(row.Shifts, Cell{Date: date, Shift: entry.Shift, Status: entry.Status})
			} else {
				row.Shifts = append(row.Shifts, Cell{Date: date, Shift: "", Status: ""})
			}
		}
		rows = append(rows, row)
	}

	return &MatrixResponse{Dates: dates, Roster: rows, AvailableMonths: months}, nil
}

func (s *Service) GetEntry(empID, date string, teamID int64) (*EntryResponse, error) {
	entry, err := s.repo.GetEntry(empID, date, teamID)
	if err != nil {
		return nil, internal.NewInternalError("roster lookup failed", err)
	}
	if entry == nil {
		return nil, internal.ErrRosterEntryNotFound
	}
	return &EntryResponse{Shift: entry.Shift, Status: entry.Status}, nil
}

func (s *Service) UpdateEntry(empID, date string, teamID int64, dto UpdateEntryDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	updated, err := s.repo.UpdateEntry(empID, date, teamID, dto.Shift, dto.Status)
	if err != nil {
		s.logger.Error("roster entry update failed", "emp_id", empID, "date", date, "team_id", teamID, "error", err)
		return internal.NewInternalError("roster entry update failed", err)
	}
	if updated == 0 {
		return internal.NewNotFoundError("Roster entry not found for team", internal.ErrCodeRosterEntryNotFound)
	}
	return nil
}

// DeleteEmployeeMonth removes one employee's entries for a month and reports
// how many rows went away.
func (s *Service) DeleteEmployeeMonth(empID string, teamID int64, monthStr string) (int64, error) {
	if _, err := ParseMonth(monthStr); err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteMonth(empID, teamID, monthStr)
	if err != nil {
		s.logger.Error("roster month delete failed", "emp_id", empID, "month", monthStr, "team_id", teamID, "error", err)
		return 0, internal.NewInternalError("roster month delete failed", err)
	}

	s.logger.Info("roster month deleted", "emp_id", empID, "month", monthStr, "team_id", teamID, "rows", deleted)
	return deleted, nil
}

// Stats reports directory and roster counts. A nil teamID (super_admin
// without a team filter) counts across all teams; shift definitions are
// global either way.
func (s *Service) Stats(teamID *int64) (*StatsResponse, error) {
	employees, err := s.repo.CountEmployees(teamID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count employees", err)
	}
	shifts, err := s.repo.CountShifts()
	if err != nil {
		return nil, internal.NewInternalError("failed to count shifts", err)
	}
	rostered, err := s.repo.CountRosteredEmployees(teamID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count rostered employees", err)
	}

	return &StatsResponse{
		TotalEmployees:    employees,
		TotalShifts:       shifts,
		RosteredEmployees: rostered,
	}, nil
}

// entriesByEmployee loads every entry covering dates with one range query
// and indexes them by employee and date.
func (s *Service) entriesByEmployee(teamID int64, dates []string) (map[string]map[string]*rosterDatamodel.Entry, error) {
	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	entries, err := s.repo.EntriesInRange(teamID, sorted[0], sorted[len(sorted)-1])
	if err != nil {
		s.logger.Error("failed to load roster entries", "team_id", teamID, "error", err)
		return nil, internal.NewInternalError("failed to load roster entries", err)
	}

	byEmp := make(map[string]map[string]*rosterDatamodel.Entry)
	for _, entry := range entries {
		if byEmp[entry.EmpID] == nil {
			byEmp[entry.EmpID] = make(map[string]*rosterDatamodel.Entry)
		}
		byEmp[entry.EmpID][entry.Date] = entry
	}
	return byEmp, nil
}

func generationKey(teamID int64, empID, month string) string {
	return fmt.Sprintf("%d|%s|%s", teamID, empID, month)
}

// keyedMutex hands out one mutex per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
