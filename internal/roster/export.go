package roster

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/frahmantamala/roster-management/internal"
	rosterDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/roster"
)

// ExportFileName is the CSV artifact written before streaming it back.
const ExportFileName = "roster_export.csv"

var exportHeader = []string{"Emp ID", "Date", "Shift Code", "Is/OFF"}

// ExportCSV writes the roster export for a team to w. For every employee
// and every selected date, the row carries a normalized shift code and an
// OFF flag. OFF days are back-filled with the employee's last known
// full-day code, seeded from history before the export window; the stored
// "N/A" shift text is never re-derived.
func (s *Service) ExportCSV(teamID int64, sel DateSelector, w io.Writer) error {
	dates, err := s.repo.DistinctDates(teamID, sel)
	if err != nil {
		s.logger.Error("failed to load export dates", "team_id", teamID, "error", err)
		return internal.NewInternalError("failed to load export dates", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return internal.NewInternalError("csv write failed", err)
	}

	if len(dates) == 0 {
		writer.Flush()
		return writer.Error()
	}

	employees, err := s.employees.GetAll(&teamID)
	if err != nil {
		return internal.NewInternalError("failed to list employees", err)
	}

	// resolve frozen display strings back to codes; entries whose shift was
	// renamed or deleted since assignment resolve to ""
	displayToCode, err := s.displayToCodeMap()
	if err != nil {
		return err
	}

	cells, err := s.entriesByEmployee(teamID, dates)
	if err != nil {
		return err
	}

	seeds, err := s.repo.LastFullShiftsBefore(teamID, dates[0])
	if err != nil {
		s.logger.Error("failed to seed export carry-forward", "team_id", teamID, "error", err)
		return internal.NewInternalError("failed to seed export carry-forward", err)
	}

	for _, emp := range employees {
		lastFullShiftCode := displayToCode[seeds[emp.EmpID]]

		for _, date := range dates {
			entry, ok := cells[emp.EmpID][date]
			if !ok {
				if err := writer.Write([]string{emp.EmpID, date, "", "0"}); err != nil {
					return internal.NewInternalError("csv write failed", err)
				}
				continue
			}

			var code string
			isOff := 0
			// status matching is case-insensitive; updates may store any
			// casing and "FULL DAY" still has to advance the tracker
			switch strings.ToUpper(entry.Status) {
			case strings.ToUpper(rosterDatamodel.StatusFullDay):
				code = displayToCode[entry.Shift]
				if code != "" {
					lastFullShiftCode = code
				}
			case strings.ToUpper(rosterDatamodel.StatusOff):
				code = lastFullShiftCode
				isOff = 1
			default:
				// Half Day or any other status resolves its own code and
				// never advances the carry-forward tracker
				code = displayToCode[entry.Shift]
			}

			if err := writer.Write([]string{emp.EmpID, date, code, strconv.Itoa(isOff)}); err != nil {
				return internal.NewInternalError("csv write failed", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return internal.NewInternalError("csv write failed", err)
	}

	s.logger.Info("roster exported", "team_id", teamID, "dates", len(dates), "employees", len(employees))
	return nil
}

// ExportToFile writes the CSV into dir and returns the file path.
func (s *Service) ExportToFile(teamID int64, sel DateSelector, dir string) (string, error) {
	path := filepath.Join(dir, ExportFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", internal.NewInternalError("failed to create export file", err)
	}

	if err := s.ExportCSV(teamID, sel, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", internal.NewInternalError("failed to finish export file", err)
	}
	return path, nil
}

func (s *Service) displayToCodeMap() (map[string]string, error) {
	shifts, err := s.shifts.GetAll("")
	if err != nil {
		return nil, internal.NewInternalError("failed to list shifts", err)
	}
	m := make(map[string]string, len(shifts))
	for _, sh := range shifts {
		m[sh.Display()] = sh.ShiftCode
	}
	return m, nil
}
