package postgres

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	"github.com/frahmantamala/roster-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
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

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	// Save skips nil pointer columns, so clear team_id explicitly
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", u.ID).
		Select("username", "role", "team_id", "active", "updated_at").
		Updates(map[string]interface{}{
			"username":   u.Username,
			"role":       u.Role,
			"team_id":    u.TeamID,
			"active":     u.Active,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}

func (r *UserRepository) UpdatePasswordHash(username, hash string) (int64, error) {
	res := r.db.Model(&userDatamodel.User{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now(),
		})
	return res.RowsAffected, res.Error
}
