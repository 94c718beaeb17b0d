package postgres

import (
	"errors"

	rosterDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/roster"
	"github.com/frahmantamala/roster-management/internal/roster"
	"gorm.io/gorm"
)

type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) roster.RepositoryAPI {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) DistinctDates(teamID int64, sel roster.DateSelector) ([]string, error) {
	var dates []string
	q := r.db.Model(&rosterDatamodel.Entry{}).
		Distinct("date").
		Where("team_id = ?", teamID).
		Order("date ASC")

	switch {
	case sel.All:
		// no extra filter
	case sel.Month != "":
		q = q.Where("date LIKE ?", sel.Month+"%")
	default:
		// latest rostered month for this team
		q = q.Where("substr(date, 1, 7) = (?)",
			r.db.Model(&rosterDatamodel.Entry{}).
				Select("substr(MAX(date), 1, 7)").
				Where("team_id = ?", teamID))
	}

	err := q.Pluck("date", &dates).Error
	return dates, err
}

func (r *RosterRepository) AvailableMonths(teamID int64) ([]string, error) {
	var months []string
	err := r.db.Model(&rosterDatamodel.Entry{}).
		Distinct("substr(date, 1, 7) AS month").
		Where("team_id = ?", teamID).
		Order("month DESC").
		Pluck("month", &months).Error
	return months, err
}

func (r *RosterRepository) EntriesInRange(teamID int64, from, to string) ([]*rosterDatamodel.Entry, error) {
	var entries []*rosterDatamodel.Entry
	err := r.db.
		Where("team_id = ? AND date >= ? AND date <= ?", teamID, from, to).
		Find(&entries).Error
	return entries, err
}

func (r *RosterRepository) LastFullShiftsBefore(teamID int64, date string) (map[string]string, error) {
	type row struct {
		EmpID string
		Shift string
	}
	var rows []row
	err := r.db.Raw(`
		SELECT r.emp_id, r.shift
		FROM roster r
		JOIN (
			SELECT emp_id, MAX(date) AS max_date
			FROM roster
			WHERE team_id = ? AND status = ? AND date < ?
			GROUP BY emp_id
		) last ON last.emp_id = r.emp_id AND last.max_date = r.date
		WHERE r.team_id = ? AND r.status = ?`,
		teamID, rosterDatamodel.StatusFullDay, date,
		teamID, rosterDatamodel.StatusFullDay).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	seeds := make(map[string]string, len(rows))
	for _, rw := range rows {
		seeds[rw.EmpID] = rw.Shift
	}
	return seeds, nil
}

func (r *RosterRepository) ReplaceMonth(teamID int64, empID, month string, entries []*rosterDatamodel.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("emp_id = ? AND team_id = ? AND date LIKE ?", empID, teamID, month+"%").
			Delete(&rosterDatamodel.Entry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *RosterRepository) GetEntry(empID, date string, teamID int64) (*rosterDatamodel.Entry, error) {
	var e rosterDatamodel.Entry
	err := r.db.
		Where("emp_id = ? AND date = ? AND team_id = ?", empID, date, teamID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *RosterRepository) UpdateEntry(empID, date string, teamID int64, shift, status string) (int64, error) {
	res := r.db.Model(&rosterDatamodel.Entry{}).
		Where("emp_id = ? AND date = ? AND team_id = ?", empID, date, teamID).
		Updates(map[string]interface{}{
			"shift":  shift,
			"status": status,
		})
	return res.RowsAffected, res.Error
}

func (r *RosterRepository) DeleteMonth(empID string, teamID int64, month string) (int64, error) {
	res := r.db.
		Where("emp_id = ? AND team_id = ? AND date LIKE ?", empID, teamID, month+"%").
		Delete(&rosterDatamodel.Entry{})
	return res.RowsAffected, res.Error
}

func (r *RosterRepository) CountEmployees(teamID *int64) (int64, error) {
	var count int64
	q := r.db.Table("employees")
	if teamID != nil {
		q = q.Where("team_id = ?", *teamID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *RosterRepository) CountShifts() (int64, error) {
	var count int64
	err := r.db.Table("shifts").Count(&count).Error
	return count, err
}

func (r *RosterRepository) CountRosteredEmployees(teamID *int64) (int64, error) {
	var count int64
	q := r.db.Model(&rosterDatamodel.Entry{}).Distinct("emp_id")
	if teamID != nil {
		q = q.Where("team_id = ?", *teamID)
	}
	err := q.Count(&count).Error
	return count, err
}
