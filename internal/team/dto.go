package team

import "time"

type TeamResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpsertTeamDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d UpsertTeamDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "Team name is required"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
