package employee

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/roster-management/internal"
	"github.com/frahmantamala/roster-management/internal/auth"
	"github.com/frahmantamala/roster-management/internal/transport"
	"github.com/frahmantamala/roster-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListEmployees(teamID *int64) ([]EmployeeResponse, error)
	GetEmployee(empID string, teamID *int64) (*EmployeeResponse, error)
	CreateEmployee(teamID int64, dto UpsertEmployeeDTO) (*EmployeeResponse, error)
	UpdateEmployee(empID string, teamID *int64, dto UpsertEmployeeDTO) (*EmployeeResponse, error)
	DeleteEmployee(empID string, teamID int64) error
	EmployeeExists(empID string, teamID int64) (bool, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	teamID, err := auth.EffectiveTeam(user, transport.QueryTeamID(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	employees, err := h.Service.ListEmployees(teamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	teamID, err := auth.EffectiveTeam(user, transport.QueryTeamID(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	e, err := h.Service.GetEmployee(chi.URLParam(r, "emp_id"), teamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto UpsertEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	teamID, err := auth.RequireEffectiveTeam(user, dto.TeamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	e, err := h.Service.CreateEmployee(teamID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto UpsertEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	teamID, err := auth.EffectiveTeam(user, dto.TeamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	e, err := h.Service.UpdateEmployee(chi.URLParam(r, "emp_id"), teamID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"emp_id": e.EmpID, "name": e.Name})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	teamID, err := auth.RequireEffectiveTeam(user, transport.QueryTeamID(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.DeleteEmployee(chi.URLParam(r, "emp_id"), teamID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	teamID, err := auth.RequireEffectiveTeam(user, transport.QueryTeamID(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	exists, err := h.Service.EmployeeExists(chi.URLParam(r, "emp_id"), teamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if _, ok := err.(ValidationError); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteAppError(w, err)
}
