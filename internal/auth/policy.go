package auth

import (
	"github.com/frahmantamala/roster-management/internal"
)

// EffectiveTeam applies the uniform team-scoping rule: a super_admin may
// address any team (or none, meaning "all" where an endpoint allows it);
// every other role is forced to its own assigned team regardless of what the
// request supplied. A non-super_admin without a team assignment is a 400.
func EffectiveTeam(u *User, requested *int64) (*int64, error) {
	if u.IsSuperAdmin() {
		return requested, nil
	}
	if u.TeamID == nil {
		return nil, internal.NewValidationError("User has no team assigned", internal.ErrCodeTeamRequired)
	}
	return u.TeamID, nil
}

// RequireEffectiveTeam is EffectiveTeam for endpoints where "all teams" is
// not a meaningful scope: a missing team resolves to TeamRequired.
func RequireEffectiveTeam(u *User, requested *int64) (int64, error) {
	teamID, err := EffectiveTeam(u, requested)
	if err != nil {
		return 0, err
	}
	if teamID == nil {
		return 0, internal.ErrTeamRequired
	}
	return *teamID, nil
}
