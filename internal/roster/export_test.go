package roster_test

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	employeeDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/employee"
	rosterDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/roster"
	shiftDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/shift"
	"github.com/frahmantamala/roster-management/internal/roster"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Roster CSV Export", func() {
	var (
		mockRepo  *MockRepository
		shifts    *MockShiftCatalog
		employees *MockEmployeeDirectory
		service   *roster.Service
	)

	const teamID = int64(1)

	addEntry := func(empID, date, shift, status string) {
		mockRepo.AddEntry(&rosterDatamodel.Entry{
			EmpID: empID, Date: date, Shift: shift, Status: status, TeamID: teamID,
		})
	}

	exportRows := func() [][]string {
		var buf bytes.Buffer
		err := service.ExportCSV(teamID, roster.DateSelector{Month: "2025-07"}, &buf)
		Expect(err).NotTo(HaveOccurred())

		rows, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		return rows
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		shifts = NewMockShiftCatalog()
		shifts.AddShift(&shiftDatamodel.Shift{
			ID: 1, ShiftName: "Morning", ShiftCode: "M", Duration: 9,
			Type: shiftDatamodel.TypeFull, ShiftTiming: "07:00-16:00",
		})
		shifts.AddShift(&shiftDatamodel.Shift{
			ID: 2, ShiftName: "Evening", ShiftCode: "E", Duration: 9,
			Type: shiftDatamodel.TypeFull, ShiftTiming: "14:00-23:00",
		})
		shifts.AddShift(&shiftDatamodel.Shift{
			ID: 3, ShiftName: "Half Morning", ShiftCode: "HM", Duration: 4,
			Type: shiftDatamodel.TypeHalf, ShiftTiming: "07:00-11:00",
		})

		employees = &MockEmployeeDirectory{}
		employees.AddEmployee(&employeeDatamodel.Employee{ID: 1, EmpID: "E001", Name: "Asha", TeamID: teamID})

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = roster.NewService(mockRepo, shifts, employees, logger)
	})

	It("writes the header row", func() {
		addEntry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay)
		rows := exportRows()
		Expect(rows[0]).To(Equal([]string{"Emp ID", "Date", "Shift Code", "Is/OFF"}))
	})

	It("writes only the header when the selection has no dates", func() {
		rows := exportRows()
		Expect(rows).To(HaveLen(1))
	})

	It("matches statuses case-insensitively", func() {
		addEntry("E001", "2025-07-01", "Morning (M)", "full day")
		addEntry("E001", "2025-07-02", rosterDatamodel.OffShiftDisplay, "off")
		addEntry("E001", "2025-07-03", "Evening (E)", "FULL DAY")

		rows := exportRows()
		Expect(rows[1]).To(Equal([]string{"E001", "2025-07-01", "M", "0"}))
		Expect(rows[2]).To(Equal([]string{"E001", "2025-07-02", "M", "1"}))
		Expect(rows[3]).To(Equal([]string{"E001", "2025-07-03", "E", "0"}))
	})

	It("resolves full-day shift snapshots to their codes", func() {
		addEntry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay)
		addEntry("E001", "2025-07-02", "Evening (E)", rosterDatamodel.StatusFullDay)

		rows := exportRows()
		Expect(rows[1]).To(Equal([]string{"E001", "2025-07-01", "M", "0"}))
		Expect(rows[2]).To(Equal([]string{"E001", "2025-07-02", "E", "0"}))
	})

	It("back-fills OFF days with the last full-day code", func() {
		addEntry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay)
		addEntry("E001", "2025-07-02", "N/A", rosterDatamodel.StatusOff)
		addEntry("E001", "2025-07-03", "Evening (E)", rosterDatamodel.StatusFullDay)

		rows := exportRows()
		Expect(rows[1]).To(Equal([]string{"E001", "2025-07-01", "M", "0"}))
		Expect(rows[2]).To(Equal([]string{"E001", "2025-07-02", "M", "1"}))
		Expect(rows[3]).To(Equal([]string{"E001", "2025-07-03", "E", "0"}))
	})

	It("seeds the carry-forward from history before the export window", func() {
		mockRepo.seeds["E001"] = "Evening (E)"
		addEntry("E001", "2025-07-01", "N/A", rosterDatamodel.StatusOff)
		addEntry("E001", "2025-07-02", "Morning (M)", rosterDatamodel.StatusFullDay)

		rows := exportRows()
		Expect(rows[1]).To(Equal([]string{"E001", "2025-07-01", "E", "1"}))
		Expect(rows[2]).To(Equal([]string{"E001", "2025-07-02", "M", "0"}))
	})

	It("leaves OFF days blank when no full day precedes them", func() {
		addEntry("E001", "2025-07-01", "N/A", rosterDatamodel.StatusOff)

		rows := exportRows()
		Expect(rows[1]).To(Equal([]string{"E001", "2025-07-01", "", "1"}))
	})

	It("does not advance the carry-forward on half days", func() {
		addEntry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay)
		addEntry("E001", "2025-07-02", "Half Morning (HM)", rosterDatamodel.StatusHalfDay)
		addEntry("E001", "2025-07-03", "N/A", rosterDatamodel.StatusOff)

		rows := exportRows()
		Expect(rows[2]).To(Equal([]string{"E001", "2025-07-02", "HM", "0"}))
		Expect(rows[3]).To(Equal([]string{"E001", "2025-07-03", "M", "1"}))
	})

	It("emits an empty code for snapshots whose shift no longer exists", func() {
		addEntry("E001", "2025-07-01", "Night (N)", rosterDatamodel.StatusFullDay)
		addEntry("E001", "2025-07-02", "N/A", rosterDatamodel.StatusOff)

		rows := exportRows()
		Expect(rows[1]).To(Equal([]string{"E001", "2025-07-01", "", "0"}))
		// the stale snapshot never became the carry-forward code
		Expect(rows[2]).To(Equal([]string{"E001", "2025-07-02", "", "1"}))
	})

	It("writes blank rows for dates without an entry", func() {
		employees.AddEmployee(&employeeDatamodel.Employee{ID: 2, EmpID: "E002", Name: "Bilal", TeamID: teamID})
		addEntry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay)

		rows := exportRows()
		Expect(rows).To(HaveLen(3))
		Expect(rows[2]).To(Equal([]string{"E002", "2025-07-01", "", "0"}))
	})

	It("writes the export file to the given directory", func() {
		addEntry("E001", "2025-07-01", "Morning (M)", rosterDatamodel.StatusFullDay)

		dir := GinkgoT().TempDir()
		path, err := service.ExportToFile(teamID, roster.DateSelector{Month: "2025-07"}, dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, roster.ExportFileName)))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("Emp ID,Date,Shift Code,Is/OFF"))
	})
})
