package timebook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

type ServiceAPI interface {
	List(ctx context.Context, sess identity.SessionContext, filter ListFilter) ([]EntryView, error)
	Week(ctx context.Context, sess identity.SessionContext, requested, employee string) (*WeekView, error)
	ExportWeek(ctx context.Context, sess identity.SessionContext, requested, employee string) ([]byte, string, error)
	Create(ctx context.Context, sess identity.SessionContext, req EntryRequest) (*EntryView, error)
	Update(ctx context.Context, sess identity.SessionContext, id int64, req EntryRequest) (*EntryView, error)
	Delete(ctx context.Context, sess identity.SessionContext, id int64) error
	MarkPaid(ctx context.Context, sess identity.SessionContext, ids []int64) (int64, error)
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
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	filter := ListFilter{
		Employee:  r.URL.Query().Get("employee"),
		JobNumber: r.URL.Query().Get("job_number"),
	}
	entries, err := h.Service.List(r.Context(), sess, filter)
	if err != nil {
		h.Logger.Error("ListTimebooks: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	view, err := h.Service.Week(r.Context(), sess, r.URL.Query().Get("week_start"), r.URL.Query().Get("employee"))
	if err != nil {
		h.Logger.Error("WeekView: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) ExportWeek(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	content, filename, err := h.Service.ExportWeek(r.Context(), sess, r.URL.Query().Get("week_start"), r.URL.Query().Get("employee"))
	if err != nil {
		h.Logger.Error("ExportWeek: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.Logger.Error("ExportWeek: write failed", "error", err)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	entry, err := h.Service.Create(r.Context(), sess, req)
	if err != nil {
		h.Logger.Error("CreateTimebook: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var req EntryRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	entry, err := h.Service.Update(r.Context(), sess, id, req)
	if err != nil {
		h.Logger.Error("UpdateTimebook: service error", "error", err, "entry_id", id, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), sess, id); err != nil {
		h.Logger.Error("DeleteTimebook: service error", "error", err, "entry_id", id, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req MarkPaidRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	n, err := h.Service.MarkPaid(r.Context(), sess, req.IDs)
	if err != nil {
		h.Logger.Error("MarkPaid: service error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"updated": n,
	})
}
