package team

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/roster-management/internal/transport"
	"github.com/frahmantamala/roster-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListTeams() ([]TeamResponse, error)
	CreateTeam(dto UpsertTeamDTO) (*TeamResponse, error)
	UpdateTeam(id int64, dto UpsertTeamDTO) (*TeamResponse, error)
	DeleteTeam(id int64) error
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
	teams, err := h.Service.ListTeams()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto UpsertTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.Service.CreateTeam(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, team)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.teamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	var dto UpsertTeamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.Service.UpdateTeam(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, team)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.teamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	if err := h.Service.DeleteTeam(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

func (h *Handler) teamID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if _, ok := err.(ValidationError); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteAppError(w, err)
}
