package employee

type EmployeeResponse struct {
	ID     int64  `json:"id"`
	EmpID  string `json:"emp_id"`
	Name   string `json:"name"`
	TeamID int64  `json:"team_id"`
}

type UpsertEmployeeDTO struct {
	EmpID  string `json:"emp_id"`
	Name   string `json:"name"`
	TeamID *int64 `json:"team_id"`
}

func (d UpsertEmployeeDTO) Validate() error {
	if d.EmpID == "" || d.Name == "" {
		return ValidationError{Msg: "Employee ID and name are required"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
