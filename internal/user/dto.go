package user

import "time"

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TeamID    *int64    `json:"team_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id"`
}

func (d CreateUserDTO) Validate() error {
	if d.Username == "" || d.Password == "" || d.Role == "" {
		return ValidationError{Msg: "username, password, and role are required"}
	}
	return nil
}

// UpdateUserDTO replaces a user's profile. Role is optional (empty keeps the
// current role); team_id is written as supplied, null clears the assignment;
// a missing active flag defaults to enabled.
type UpdateUserDTO struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id"`
	Active   *bool  `json:"active"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	return nil
}

type ResetPasswordDTO struct {
	Password string `json:"password"`
}

func (d ResetPasswordDTO) Validate() error {
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }
