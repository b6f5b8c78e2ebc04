package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/maritime-backoffice/internal/transport"
	"github.com/frahmantamala/maritime-backoffice/pkg/logger"
)

type ServiceAPI interface {
	Generate(ctx context.Context, req GenerateRequest) (*File, error)
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

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	file, err := h.Service.Generate(r.Context(), req)
	if err != nil {
		h.Logger.Error("GenerateInvoice: service error", "error", err, "job_id", req.JobID, "user_id", sess.UserID)
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("X-Invoice-Number", file.Document.Number)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		h.Logger.Error("GenerateInvoice: write failed", "error", err)
	}
}
