package postgres

import (
	"errors"

	teamDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/team"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	"github.com/frahmantamala/roster-management/internal/team"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetAll() ([]*teamDatamodel.Team, error) {
	var teams []*teamDatamodel.Team
	err := r.db.Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetByID(id int64) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) GetByName(name string) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := r.db.Where("name = ?", name).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) Create(t *teamDatamodel.Team) error {
	return r.db.Create(t).Error
}

func (r *TeamRepository) Update(t *teamDatamodel.Team) error {
	return r.db.Save(t).Error
}

func (r *TeamRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userDatamodel.User{}).
			Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&teamDatamodel.Team{}).Error
	})
}
