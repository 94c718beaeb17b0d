package transport

import (
	"net/http"
	"strconv"
)

// QueryTeamID parses the optional team_id query parameter. Unparseable
// values are treated as absent.
func QueryTeamID(r *http.Request) *int64 {
	raw := r.URL.Query().Get("team_id")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
