package job

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Job, error)
	Get(ctx context.Context, id int64) (*Job, error)
	Create(ctx context.Context, req JobRequest) (*Job, error)
	Update(ctx context.Context, id int64, req JobRequest) (*Job, error)
	Delete(ctx context.Context, id int64) error
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListJobs: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	j, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, j)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	j, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.Logger.Error("CreateJob: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, j)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var req JobRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	j, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		h.Logger.Error("UpdateJob: service error", "error", err, "job_id", id)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, j)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteJob: service error", "error", err, "job_id", id)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
