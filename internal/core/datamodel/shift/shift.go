package shift

import "fmt"

const (
	TypeFull = "full"
	TypeHalf = "half"
)

type Shift struct {
	ID          int64  `gorm:"primaryKey"`
	ShiftName   string `gorm:"column:shift_name;not null"`
	ShiftCode   string `gorm:"column:shift_code;uniqueIndex;not null"`
	Duration    int    `gorm:"column:duration;not null"`
	Type        string `gorm:"column:type;not null"`
	ShiftTiming string `gorm:"column:shift_timing;not null"`
}

func (Shift) TableName() string {
	return "shifts"
}

// Display is the frozen string stored on roster rows at assignment time.
// Renaming a shift never rewrites historical roster rows, so resolving a
// display string back to a code can legitimately fail.
func (s Shift) Display() string {
	return fmt.Sprintf("%s (%s)", s.ShiftName, s.ShiftCode)
}
