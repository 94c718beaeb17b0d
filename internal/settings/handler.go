package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/roster-management/internal/transport"
	"github.com/frahmantamala/roster-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetSettings() (map[string]string, error)
	SetSetting(key, value string) error
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

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.GetSettings()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Value == nil {
		h.WriteError(w, http.StatusBadRequest, "value is required")
		return
	}

	value := fmt.Sprintf("%v", body.Value)
	if err := h.Service.SetSetting(key, value); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]any{"key": key, "value": body.Value})
}
