package postgres

import (
	"errors"

	employeeDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/employee"
	rosterDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/roster"
	"github.com/frahmantamala/roster-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(teamID *int64) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	q := r.db.Order("name ASC")
	if teamID != nil {
		q = q.Where("team_id = ?", *teamID)
	}
	err := q.Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByEmpID(empID string, teamID *int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	q := r.db.Where("emp_id = ?", empID)
	if teamID != nil {
		q = q.Where("team_id = ?", *teamID)
	}
	err := q.First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) ExistsOther(empID string, teamID int64, excludeEmpID string) (bool, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("emp_id = ? AND emp_id != ? AND team_id = ?", empID, excludeEmpID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) Create(e *employeeDatamodel.Employee) error {
	return r.db.Create(e).Error
}

func (r *EmployeeRepository) RenameCascade(oldEmpID string, teamID int64, newEmpID, name string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&employeeDatamodel.Employee{}).
			Where("emp_id = ? AND team_id = ?", oldEmpID, teamID).
			Updates(map[string]interface{}{
				"emp_id": newEmpID,
				"name":   name,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&rosterDatamodel.Entry{}).
			Where("emp_id = ? AND team_id = ?", oldEmpID, teamID).
			Update("emp_id", newEmpID).Error
	})
}

func (r *EmployeeRepository) DeleteCascade(empID string, teamID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emp_id = ? AND team_id = ?", empID, teamID).
			Delete(&rosterDatamodel.Entry{}).Error; err != nil {
			return err
		}
		return tx.Where("emp_id = ? AND team_id = ?", empID, teamID).
			Delete(&employeeDatamodel.Employee{}).Error
	})
}
