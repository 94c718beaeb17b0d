package shift

import (
	shiftDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/shift"
)

type ShiftResponse struct {
	ID          int64  `json:"id"`
	ShiftName   string `json:"shift_name"`
	ShiftCode   string `json:"shift_code"`
	Duration    int    `json:"duration"`
	Type        string `json:"type"`
	ShiftTiming string `json:"shift_timing"`
}

type UpsertShiftDTO struct {
	ShiftName   string `json:"shift_name"`
	ShiftCode   string `json:"shift_code"`
	Duration    int    `json:"duration"`
	Type        string `json:"type"`
	ShiftTiming string `json:"shift_timing"`
}

func (d UpsertShiftDTO) Validate() error {
	if d.ShiftName == "" || d.ShiftCode == "" || d.Duration == 0 || d.Type == "" || d.ShiftTiming == "" {
		return ValidationError{Msg: "All fields are required"}
	}
	if d.Type != shiftDatamodel.TypeFull && d.Type != shiftDatamodel.TypeHalf {
		return ValidationError{Msg: "type must be 'full' or 'half'"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
