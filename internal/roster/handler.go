package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/frahmantamala/roster-management/internal"
	"github.com/frahmantamala/roster-management/internal/auth"
	"github.com/frahmantamala/roster-management/internal/transport"
	"github.com/frahmantamala/roster-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Generate(teamID int64, dto GenerateRosterDTO) error
	BuildMatrix(teamID int64, sel DateSelector) (*MatrixResponse, error)
	GetEntry(empID, date string, teamID int64) (*EntryResponse, error)
	UpdateEntry(empID, date string, teamID int64, dto UpdateEntryDTO) error
	DeleteEmployeeMonth(empID string, teamID int64, month string) (int64, error)
	ExportToFile(teamID int64, sel DateSelector, dir string) (string, error)
	Stats(teamID *int64) (*StatsResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	ExportDir string
}

func NewHandler(svc ServiceAPI, exportDir string) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		ExportDir:   exportDir,
	}
}

// Matrix serves the roster grid for one team. Supervisors and admins are
// pinned to their own team; a super admin must name one explicitly.
func (h *Handler) Matrix(w http.ResponseWriter, r *http.Request) {
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

	matrix, err := h.Service.BuildMatrix(teamID, selectorFromRequest(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, matrix)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto GenerateRosterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	teamID, err := auth.RequireEffectiveTeam(user, dto.TeamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.Generate(teamID, dto); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Roster created successfully"})
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
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

	entry, err := h.Service.GetEntry(chi.URLParam(r, "emp_id"), chi.URLParam(r, "date"), teamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	var dto UpdateEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	teamID, err := auth.RequireEffectiveTeam(user, dto.TeamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.UpdateEntry(chi.URLParam(r, "emp_id"), chi.URLParam(r, "date"), teamID, dto); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Roster entry updated successfully"})
}

func (h *Handler) DeleteEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrMissingToken)
		return
	}

	empID := r.URL.Query().Get("emp_id")
	month := r.URL.Query().Get("month")
	requested := transport.QueryTeamID(r)

	teamID, err := auth.EffectiveTeam(user, requested)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if empID == "" || month == "" || teamID == nil {
		h.WriteError(w, http.StatusBadRequest, "emp_id, month, and team_id are required")
		return
	}

	deleted, err := h.Service.DeleteEmployeeMonth(empID, *teamID, month)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Deleted %d roster entries", deleted),
	})
}

// Export streams the team's roster CSV as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
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

	path, err := h.Service.ExportToFile(teamID, selectorFromRequest(r), h.ExportDir)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		h.WriteAppError(w, internal.NewInternalError("failed to open export file", err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName))
	if _, err := io.Copy(w, f); err != nil {
		h.Logger.Error("failed to stream export", "error", err)
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.Service.Stats(teamID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func selectorFromRequest(r *http.Request) DateSelector {
	q := r.URL.Query()
	return SelectorFromQuery(q.Get("month"), q.Get("all") == "true")
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if _, ok := err.(ValidationError); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteAppError(w, err)
}
