package shift

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
	ListShifts(shiftType string) ([]ShiftResponse, error)
	GetShift(id int64) (*ShiftResponse, error)
	CreateShift(dto UpsertShiftDTO) (*ShiftResponse, error)
	UpdateShift(id int64, dto UpsertShiftDTO) (*ShiftResponse, error)
	DeleteShift(id int64) error
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
	shifts, err := h.Service.ListShifts(r.URL.Query().Get("type"))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, shifts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.shiftID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	sh, err := h.Service.GetShift(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sh)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto UpsertShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sh, err := h.Service.CreateShift(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, sh)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.shiftID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var dto UpsertShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sh, err := h.Service.UpdateShift(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sh)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.shiftID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	if err := h.Service.DeleteShift(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Shift deleted successfully"})
}

func (h *Handler) shiftID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if _, ok := err.(ValidationError); ok {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteAppError(w, err)
}
