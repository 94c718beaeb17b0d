package postgres_test

import (
	"testing"

	employeeDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/employee"
	rosterDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/roster"
	shiftDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/shift"
	"github.com/frahmantamala/roster-management/internal/roster"
	rosterPostgres "github.com/frahmantamala/roster-management/internal/roster/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRosterPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Roster Postgres Suite")
}

var _ = Describe("Roster Repository", func() {
	var (
		db   *gorm.DB
		repo roster.RepositoryAPI
	)

	const teamID = int64(1)
	const otherTeam = int64(2)

	entry := func(empID, date, shift, status string, team int64) *rosterDatamodel.Entry {
		return &rosterDatamodel.Entry{EmpID: empID, Date: date, Shift: shift, Status: status, TeamID: team}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&rosterDatamodel.Entry{}, &employeeDatamodel.Employee{}, &shiftDatamodel.Shift{})
		Expect(err).NotTo(HaveOccurred())

		repo = rosterPostgres.NewRosterRepository(db)
	})

	Describe("DistinctDates", func() {
		BeforeEach(func() {
			Expect(db.Create(entry("E001", "2025-06-30", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E002", "2025-07-01", "Evening (E)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-07-02", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E009", "2025-07-03", "Morning (M)", rosterDatamodel.StatusFullDay, otherTeam)).Error).To(Succeed())
		})

		It("deduplicates dates within a month, ascending", func() {
			dates, err := repo.DistinctDates(teamID, roster.DateSelector{Month: "2025-07"})
			Expect(err).NotTo(HaveOccurred())
			Expect(dates).To(Equal([]string{"2025-07-01", "2025-07-02"}))
		})

		It("covers every month with the all selector", func() {
			dates, err := repo.DistinctDates(teamID, roster.DateSelector{All: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(dates).To(Equal([]string{"2025-06-30", "2025-07-01", "2025-07-02"}))
		})

		It("defaults to the team's most recent month", func() {
			dates, err := repo.DistinctDates(teamID, roster.DateSelector{})
			Expect(err).NotTo(HaveOccurred())
			Expect(dates).To(Equal([]string{"2025-07-01", "2025-07-02"}))
		})

		It("never crosses team boundaries", func() {
			dates, err := repo.DistinctDates(otherTeam, roster.DateSelector{All: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(dates).To(Equal([]string{"2025-07-03"}))
		})
	})

	Describe("AvailableMonths", func() {
		It("lists distinct months newest first", func() {
			Expect(db.Create(entry("E001", "2025-06-30", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-05-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())

			months, err := repo.AvailableMonths(teamID)
			Expect(err).NotTo(HaveOccurred())
			Expect(months).To(Equal([]string{"2025-07", "2025-06", "2025-05"}))
		})
	})

	Describe("LastFullShiftsBefore", func() {
		It("returns each employee's most recent full-day snapshot before the date", func() {
			Expect(db.Create(entry("E001", "2025-06-28", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-06-30", "Evening (E)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-06-29", "N/A", rosterDatamodel.StatusOff, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E002", "2025-06-30", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			// on-or-after the cutoff, must not count
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())

			seeds, err := repo.LastFullShiftsBefore(teamID, "2025-07-01")
			Expect(err).NotTo(HaveOccurred())
			Expect(seeds).To(Equal(map[string]string{
				"E001": "Evening (E)",
				"E002": "Morning (M)",
			}))
		})

		It("ignores OFF rows and foreign teams", func() {
			Expect(db.Create(entry("E001", "2025-06-30", "N/A", rosterDatamodel.StatusOff, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-06-30", "Morning (M)", rosterDatamodel.StatusFullDay, otherTeam)).Error).To(Succeed())

			seeds, err := repo.LastFullShiftsBefore(teamID, "2025-07-01")
			Expect(err).NotTo(HaveOccurred())
			Expect(seeds).To(BeEmpty())
		})
	})

	Describe("ReplaceMonth", func() {
		It("swaps out one employee's month atomically", func() {
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-06-30", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E002", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())

			err := repo.ReplaceMonth(teamID, "E001", "2025-07", []*rosterDatamodel.Entry{
				entry("E001", "2025-07-01", "Evening (E)", rosterDatamodel.StatusFullDay, teamID),
				entry("E001", "2025-07-02", "Evening (E)", rosterDatamodel.StatusFullDay, teamID),
			})
			Expect(err).NotTo(HaveOccurred())

			var rows []*rosterDatamodel.Entry
			Expect(db.Where("emp_id = ? AND team_id = ?", "E001", teamID).Order("date").Find(&rows).Error).To(Succeed())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].Date).To(Equal("2025-06-30"))
			Expect(rows[1].Shift).To(Equal("Evening (E)"))

			other, err := repo.GetEntry("E002", "2025-07-01", teamID)
			Expect(err).NotTo(HaveOccurred())
			Expect(other).NotTo(BeNil())
		})

		It("clears a month when given no replacement rows", func() {
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())

			Expect(repo.ReplaceMonth(teamID, "E001", "2025-07", nil)).To(Succeed())

			got, err := repo.GetEntry("E001", "2025-07-01", teamID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("GetEntry and UpdateEntry", func() {
		BeforeEach(func() {
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
		})

		It("returns nil for a missing cell", func() {
			got, err := repo.GetEntry("E001", "2025-07-09", teamID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("updates in place and reports the affected count", func() {
			n, err := repo.UpdateEntry("E001", "2025-07-01", teamID, "Evening (E)", rosterDatamodel.StatusHalfDay)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			got, err := repo.GetEntry("E001", "2025-07-01", teamID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Shift).To(Equal("Evening (E)"))
			Expect(got.Status).To(Equal(rosterDatamodel.StatusHalfDay))
		})

		It("reports zero when the cell is in another team", func() {
			n, err := repo.UpdateEntry("E001", "2025-07-01", otherTeam, "Evening (E)", rosterDatamodel.StatusFullDay)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("DeleteMonth", func() {
		It("deletes one employee-month and counts the rows", func() {
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-07-02", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-06-30", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())

			n, err := repo.DeleteMonth("E001", teamID, "2025-07")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))

			left, err := repo.GetEntry("E001", "2025-06-30", teamID)
			Expect(err).NotTo(HaveOccurred())
			Expect(left).NotTo(BeNil())
		})
	})

	Describe("Counts", func() {
		BeforeEach(func() {
			Expect(db.Create(&employeeDatamodel.Employee{EmpID: "E001", Name: "Asha", TeamID: teamID}).Error).To(Succeed())
			Expect(db.Create(&employeeDatamodel.Employee{EmpID: "E002", Name: "Bilal", TeamID: otherTeam}).Error).To(Succeed())
			Expect(db.Create(&shiftDatamodel.Shift{ShiftName: "Morning", ShiftCode: "M", Duration: 9, Type: shiftDatamodel.TypeFull, ShiftTiming: "07:00-16:00"}).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E001", "2025-07-02", "Morning (M)", rosterDatamodel.StatusFullDay, teamID)).Error).To(Succeed())
			Expect(db.Create(entry("E002", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay, otherTeam)).Error).To(Succeed())
		})

		It("scopes employee and roster counts by team", func() {
			team := teamID
			n, err := repo.CountEmployees(&team)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			r, err := repo.CountRosteredEmployees(&team)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(int64(1)))
		})

		It("counts globally without a team filter", func() {
			n, err := repo.CountEmployees(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))

			r, err := repo.CountRosteredEmployees(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(int64(2)))
		})

		It("counts shift definitions globally", func() {
			n, err := repo.CountShifts()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
		})
	})
})
