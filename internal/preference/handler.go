package preference

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

type ServiceAPI interface {
	Get(ctx context.Context, userID int64) (*Preference, error)
	Save(ctx context.Context, userID int64, req PreferenceRequest) (*Preference, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	p, err := h.Service.Get(r.Context(), sess.UserID)
	if err != nil {
		h.Logger.Error("GetPreferences: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req PreferenceRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	p, err := h.Service.Save(r.Context(), sess.UserID, req)
	if err != nil {
		h.Logger.Error("SavePreferences: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}
