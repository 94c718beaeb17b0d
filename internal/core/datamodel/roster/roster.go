package roster

const (
	StatusFullDay = "Full Day"
	StatusHalfDay = "Half Day"
	StatusOff     = "OFF"

	// OffShiftDisplay is stored as the shift text of an OFF day. Exports
	// never resolve it; OFF days are back-filled from the last full-day code.
	OffShiftDisplay = "N/A"
)

// Entry is one employee-day cell. Shift holds the display-string snapshot of
// the assigned shift, not a foreign key.
type Entry struct {
	ID     int64  `gorm:"primaryKey"`
	EmpID  string `gorm:"column:emp_id;not null;uniqueIndex:idx_roster_emp_date_team"`
	Date   string `gorm:"column:date;not null;uniqueIndex:idx_roster_emp_date_team"`
	Shift  string `gorm:"column:shift;not null"`
	Status string `gorm:"column:status;not null"`
	TeamID int64  `gorm:"column:team_id;not null;uniqueIndex:idx_roster_emp_date_team"`
}

func (Entry) TableName() string {
	return "roster"
}
