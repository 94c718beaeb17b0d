package postgres

import (
	"errors"

	shiftDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/shift"
	"github.com/frahmantamala/roster-management/internal/shift"
	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.RepositoryAPI {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) GetAll(shiftType string) ([]*shiftDatamodel.Shift, error) {
	var shifts []*shiftDatamodel.Shift
	q := r.db.Order("shift_name ASC")
	if shiftType != "" {
		q = q.Where("type = ?", shiftType)
	}
	err := q.Find(&shifts).Error
	return shifts, err
}

func (r *ShiftRepository) GetByID(id int64) (*shiftDatamodel.Shift, error) {
	var s shiftDatamodel.Shift
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) GetByCode(code string) (*shiftDatamodel.Shift, error) {
	var s shiftDatamodel.Shift
	err := r.db.Where("shift_code = ?", code).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) Create(s *shiftDatamodel.Shift) error {
	return r.db.Create(s).Error
}

func (r *ShiftRepository) Update(s *shiftDatamodel.Shift) error {
	return r.db.Save(s).Error
}

func (r *ShiftRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&shiftDatamodel.Shift{}).Error
}
