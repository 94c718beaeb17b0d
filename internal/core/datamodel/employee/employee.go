package employee

// Employee belongs to exactly one team; EmpID is unique within that team.
type Employee struct {
	ID     int64  `gorm:"primaryKey"`
	EmpID  string `gorm:"column:emp_id;not null;uniqueIndex:idx_employees_emp_id_team"`
	Name   string `gorm:"column:name;not null"`
	TeamID int64  `gorm:"column:team_id;not null;uniqueIndex:idx_employees_emp_id_team"`
}

func (Employee) TableName() string {
	return "employees"
}
