package auth

import (
	"context"

	"github.com/frahmantamala/roster-management/internal"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
)

// User is the authenticated caller as seen by handlers and policy checks.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id"`
	Active   bool   `json:"active"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == userDatamodel.RoleSuperAdmin
}

func FromDataModel(dm *userDatamodel.User) *User {
	return &User{
		ID:       dm.ID,
		Username: dm.Username,
		Role:     dm.Role,
		TeamID:   dm.TeamID,
		Active:   dm.Active,
	}
}

// UserFromContext returns the user injected by the auth middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(internal.ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, internal.ContextUserKey, u)
}
