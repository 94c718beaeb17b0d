package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidMonth     ErrorCode = "INVALID_MONTH"
	ErrCodeInvalidReference ErrorCode = "INVALID_REFERENCE"
	ErrCodeTeamRequired     ErrorCode = "TEAM_REQUIRED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled    ErrorCode = "ACCOUNT_DISABLED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"

	ErrCodeTeamNotFound        ErrorCode = "TEAM_NOT_FOUND"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmployeeNotFound    ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeShiftNotFound       ErrorCode = "SHIFT_NOT_FOUND"
	ErrCodeRosterEntryNotFound ErrorCode = "ROSTER_ENTRY_NOT_FOUND"

	ErrCodeTeamNameExists   ErrorCode = "TEAM_NAME_EXISTS"
	ErrCodeUsernameExists   ErrorCode = "USERNAME_EXISTS"
	ErrCodeEmployeeIDExists ErrorCode = "EMPLOYEE_ID_EXISTS"
	ErrCodeShiftCodeExists  ErrorCode = "SHIFT_CODE_EXISTS"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError reports a uniqueness violation. The API contract exposes
// these as 400, not 409.
func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials", ErrCodeInvalidCredentials)
	ErrAccountDisabled    = NewForbiddenError("User is deactivated", ErrCodeAccountDisabled)
	ErrInvalidToken       = NewUnauthorizedError("Unauthorized - Invalid token", ErrCodeInvalidToken)
	ErrMissingToken       = NewUnauthorizedError("Unauthorized - No token", ErrCodeInvalidToken)
	ErrForbidden          = NewForbiddenError("Forbidden", ErrCodeForbidden)
	ErrTeamRequired       = NewValidationError("Team is required", ErrCodeTeamRequired)

	ErrTeamNotFound        = NewNotFoundError("Team not found", ErrCodeTeamNotFound)
	ErrUserNotFound        = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrEmployeeNotFound    = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrShiftNotFound       = NewNotFoundError("Shift not found", ErrCodeShiftNotFound)
	ErrRosterEntryNotFound = NewNotFoundError("Roster entry not found", ErrCodeRosterEntryNotFound)

	ErrTeamNameExists   = NewConflictError("Team name already exists", ErrCodeTeamNameExists)
	ErrUsernameExists   = NewConflictError("Username already exists", ErrCodeUsernameExists)
	ErrEmployeeIDExists = NewConflictError("Employee ID already exists", ErrCodeEmployeeIDExists)
	ErrShiftCodeExists  = NewConflictError("Shift code already exists", ErrCodeShiftCodeExists)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
