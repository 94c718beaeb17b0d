package employee_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/roster-management/internal"
	employeeDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/roster-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

type MockRepository struct {
	employees  []*employeeDatamodel.Employee
	renamed    []string
	deleted    []string
	shouldFail bool
	failError  error
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) AddEmployee(e *employeeDatamodel.Employee) {
	m.employees = append(m.employees, e)
}

func (m *MockRepository) GetAll(teamID *int64) ([]*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var out []*employeeDatamodel.Employee
	for _, e := range m.employees {
		if teamID == nil || e.TeamID == *teamID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByEmpID(empID string, teamID *int64) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, e := range m.employees {
		if e.EmpID == empID && (teamID == nil || e.TeamID == *teamID) {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) ExistsOther(empID string, teamID int64, excludeEmpID string) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	for _, e := range m.employees {
		if e.EmpID == empID && e.TeamID == teamID && e.EmpID != excludeEmpID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) Create(e *employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	m.employees = append(m.employees, e)
	return nil
}

func (m *MockRepository) RenameCascade(oldEmpID string, teamID int64, newEmpID, name string) error {
	if m.shouldFail {
		return m.failError
	}
	for _, e := range m.employees {
		if e.EmpID == oldEmpID && e.TeamID == teamID {
			e.EmpID = newEmpID
			e.Name = name
			m.renamed = append(m.renamed, newEmpID)
			return nil
		}
	}
	return nil
}

func (m *MockRepository) DeleteCascade(empID string, teamID int64) error {
	if m.shouldFail {
		return m.failError
	}
	var kept []*employeeDatamodel.Employee
	for _, e := range m.employees {
		if e.EmpID == empID && e.TeamID == teamID {
			m.deleted = append(m.deleted, empID)
			continue
		}
		kept = append(kept, e)
	}
	m.employees = kept
	return nil
}

var _ = Describe("Employee Service", func() {
	var (
		mockRepo *MockRepository
		service  *employee.Service
	)

	teamOne := int64(1)
	teamTwo := int64(2)

	BeforeEach(func() {
		mockRepo = &MockRepository{}
		mockRepo.AddEmployee(&employeeDatamodel.Employee{ID: 1, EmpID: "E001", Name: "Asha", TeamID: teamOne})
		mockRepo.AddEmployee(&employeeDatamodel.Employee{ID: 2, EmpID: "E002", Name: "Bilal", TeamID: teamOne})
		mockRepo.AddEmployee(&employeeDatamodel.Employee{ID: 3, EmpID: "E001", Name: "Chitra", TeamID: teamTwo})

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, logger)
	})

	Describe("ListEmployees", func() {
		It("scopes the listing to the team", func() {
			out, err := service.ListEmployees(&teamOne)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(2))
		})

		It("lists all teams when no filter is given", func() {
			out, err := service.ListEmployees(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(3))
		})
	})

	Describe("CreateEmployee", func() {
		It("allows the same employee ID in different teams", func() {
			out, err := service.CreateEmployee(teamTwo, employee.UpsertEmployeeDTO{EmpID: "E002", Name: "Dev"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.TeamID).To(Equal(teamTwo))
		})

		It("rejects a duplicate employee ID within the team", func() {
			_, err := service.CreateEmployee(teamOne, employee.UpsertEmployeeDTO{EmpID: "E001", Name: "Dup"})
			Expect(err).To(MatchError("Employee ID already exists in this team"))
		})

		It("requires emp_id and name", func() {
			_, err := service.CreateEmployee(teamOne, employee.UpsertEmployeeDTO{EmpID: "E009"})
			Expect(err).To(MatchError("Employee ID and name are required"))
		})
	})

	Describe("UpdateEmployee", func() {
		It("renames within the caller's team", func() {
			out, err := service.UpdateEmployee("E001", &teamOne, employee.UpsertEmployeeDTO{EmpID: "E010", Name: "Asha K"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.EmpID).To(Equal("E010"))
			Expect(mockRepo.renamed).To(ContainElement("E010"))
		})

		It("rejects renaming onto an ID already used in the team", func() {
			_, err := service.UpdateEmployee("E001", &teamOne, employee.UpsertEmployeeDTO{EmpID: "E002", Name: "Asha"})
			Expect(err).To(HaveOccurred())
		})

		It("resolves the team from the employee when the caller gave none", func() {
			out, err := service.UpdateEmployee("E002", nil, employee.UpsertEmployeeDTO{EmpID: "E002", Name: "Bilal R"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.TeamID).To(Equal(teamOne))
		})

		It("returns not found when the employee is not in the effective team", func() {
			_, err := service.UpdateEmployee("E002", &teamTwo, employee.UpsertEmployeeDTO{EmpID: "E002", Name: "Moved"})
			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})

		It("fails when neither caller nor directory can supply a team", func() {
			_, err := service.UpdateEmployee("GHOST", nil, employee.UpsertEmployeeDTO{EmpID: "GHOST", Name: "Ghost"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeleteEmployee", func() {
		It("removes the employee from the team only", func() {
			Expect(service.DeleteEmployee("E001", teamOne)).To(Succeed())

			gone, _ := mockRepo.GetByEmpID("E001", &teamOne)
			Expect(gone).To(BeNil())
			still, _ := mockRepo.GetByEmpID("E001", &teamTwo)
			Expect(still).NotTo(BeNil())
		})

		It("surfaces storage failures", func() {
			mockRepo.SetShouldFail(true, errors.New("db down"))
			Expect(service.DeleteEmployee("E001", teamOne)).NotTo(Succeed())
		})
	})

	Describe("EmployeeExists", func() {
		It("is true only within the team", func() {
			exists, err := service.EmployeeExists("E002", teamOne)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = service.EmployeeExists("E002", teamTwo)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
