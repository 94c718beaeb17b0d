package roster

// HalfDayAssignment maps one date of a generated month to a half-day shift.
type HalfDayAssignment struct {
	Date    string `json:"date"`
	ShiftID int64  `json:"shift_id"`
}

// GenerateRosterDTO is the payload of POST /api/roster.
type GenerateRosterDTO struct {
	EmpID     string              `json:"emp_id"`
	Month     string              `json:"month"` // YYYY-MM
	ShiftID   int64               `json:"shift_id"`
	OffDates  []string            `json:"off_dates"`
	HalfDates []HalfDayAssignment `json:"half_dates"`
	TeamID    *int64              `json:"team_id"`
}

func (d GenerateRosterDTO) Validate() error {
	if d.EmpID == "" || d.Month == "" || d.ShiftID == 0 {
		return ValidationError{Msg: "Employee ID, month, and default shift are required"}
	}
	return nil
}

// Cell is one date slot in a matrix row. Shift and Status are empty strings,
// never null, when the employee has no entry for the date.
type Cell struct {
	Date   string `json:"date"`
	Shift  string `json:"shift"`
	Status string `json:"status"`
}

type MatrixRow struct {
	EmpID  string `json:"emp_id"`
	Name   string `json:"name"`
	Shifts []Cell `json:"shifts"`
}

type MatrixResponse struct {
	Dates           []string    `json:"dates"`
	Roster          []MatrixRow `json:"roster"`
	AvailableMonths []string    `json:"available_months"`
}

type EntryResponse struct {
	Shift  string `json:"shift"`
	Status string `json:"status"`
}

type UpdateEntryDTO struct {
	Shift  string `json:"shift"`
	Status string `json:"status"`
	TeamID *int64 `json:"team_id"`
}

func (d UpdateEntryDTO) Validate() error {
	if d.Shift == "" || d.Status == "" {
		return ValidationError{Msg: "Shift and status are required"}
	}
	return nil
}

type StatsResponse struct {
	TotalEmployees    int64 `json:"total_employees"`
	TotalShifts       int64 `json:"total_shifts"`
	RosteredEmployees int64 `json:"rostered_employees"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
