// Package dashboard reports row counts for every page of the back office.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/permission"
	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	counters map[permission.Page]Counter
}

func NewService(counters map[permission.Page]Counter) *Service {
	return &Service{counters: counters}
}

// Counts returns one entry per catalog page. Pages without a
// counter report zero.
func (s *Service) Counts(ctx context.Context) (map[permission.Page]int64, error) {
	out := make(map[permission.Page]int64, len(permission.Pages()))
	for _, page := range permission.Pages() {
		c, ok := s.counters[page]
		if !ok {
			out[page] = 0
			continue
		}
		n, err := c.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", page, err)
		}
		out[page] = n
	}
	return out, nil
}

type ServiceAPI interface {
	Counts(ctx context.Context) (map[permission.Page]int64, error)
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
	counts, err := h.Service.Counts(r.Context())
	if err != nil {
		h.Logger.Error("Dashboard: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"counts": counts})
}
