package session

import "time"

// Session maps an opaque token to a username. Sessions have no expiry; they
// live until logout or until the owning user is deleted or deactivated.
// LastAccessed is maintained so a TTL sweep could be added later without a
// schema change.
type Session struct {
	Token        string    `gorm:"column:token;primaryKey"`
	Username     string    `gorm:"column:username;index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	LastAccessed time.Time `gorm:"column:last_accessed"`
}

func (Session) TableName() string {
	return "sessions"
}
