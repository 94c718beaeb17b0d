package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/roster-management/internal/auth"
	sessionDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/session"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) auth.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(token, username string) error {
	now := time.Now()
	s := sessionDatamodel.Session{
		Token:        token,
		Username:     username,
		CreatedAt:    now,
		LastAccessed: now,
	}
	// upsert keeps re-login with a colliding token harmless
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "created_at", "last_accessed"}),
	}).Create(&s).Error
}

func (r *SessionRepository) FindUsername(token string) (string, error) {
	var s sessionDatamodel.Session
	err := r.db.Where("token = ?", token).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Username, nil
}

func (r *SessionRepository) Touch(token string) error {
	return r.db.Model(&sessionDatamodel.Session{}).
		Where("token = ?", token).
		Update("last_accessed", time.Now()).Error
}

func (r *SessionRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&sessionDatamodel.Session{}).Error
}

func (r *SessionRepository) DeleteForUsername(username string) error {
	return r.db.Where("username = ?", username).Delete(&sessionDatamodel.Session{}).Error
}
