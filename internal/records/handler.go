package records

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

// PurchaseOrderPageSize is how many purchase orders one list page holds.
const PurchaseOrderPageSize = 25

type StoreAPI[T any] interface {
	List(ctx context.Context, page Page) (*Listing[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, id int64, v *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Options tune one resource's handler.
type Options[T any] struct {
	// Name labels log lines, e.g. "vessel".
	Name     string
	PageSize int
	Validate func(*T) error
	// Stamp runs on create after validation.
	Stamp func(sess identity.SessionContext, v *T)
}

type Handler[T any] struct {
	*transport.BaseHandler
	Store StoreAPI[T]
	opts  Options[T]
}

func NewHandler[T any](store StoreAPI[T], opts Options[T]) *Handler[T] {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler[T]{
		BaseHandler: transport.NewBaseHandler(lg.With("record", opts.Name)),
		Store:       store,
		opts:        opts,
	}
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	page := Page{Number: 1, Size: h.opts.PageSize}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}

	listing, err := h.Store.List(r.Context(), page)
	if err != nil {
		h.Logger.Error("ListRecords: store error", "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, listing)
}

func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	v, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	v := new(T)
	if err := h.DecodeJSON(r, v); err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.validate(v); err != nil {
		h.WriteAppError(w, err)
		return
	}
	if h.opts.Stamp != nil {
		h.opts.Stamp(sess, v)
	}

	if err := h.Store.Create(r.Context(), v); err != nil {
		h.Logger.Error("CreateRecord: store error", "error", err, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	v := new(T)
	if err := h.DecodeJSON(r, v); err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.validate(v); err != nil {
		h.WriteAppError(w, err)
		return
	}

	updated, err := h.Store.Update(r.Context(), id, v)
	if err != nil {
		h.Logger.Error("UpdateRecord: store error", "error", err, "id", id)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.Logger.Error("DeleteRecord: store error", "error", err, "id", id)
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[T]) validate(v *T) error {
	if h.opts.Validate == nil {
		return nil
	}
	return h.opts.Validate(v)
}
