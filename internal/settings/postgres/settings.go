package postgres

import (
	settingDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/setting"
	"github.com/frahmantamala/roster-management/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.RepositoryAPI {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetAll() ([]*settingDatamodel.Setting, error) {
	var rows []*settingDatamodel.Setting
	err := r.db.Find(&rows).Error
	return rows, err
}

func (r *SettingsRepository) Upsert(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settingDatamodel.Setting{Key: key, Value: value}).Error
}
