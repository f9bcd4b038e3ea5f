package report

import (
	"bytes"
	"context"
	"net/http"

	"github.com/frahmantamala/crm-console/internal/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/transport"
)

type ServiceAPI interface {
	ExportOrders(ctx context.Context, checker permission.Checker, state order.FilterState) (*bytes.Buffer, error)
	FileName() string
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ExportOrders accepts the same query parameters as the order list.
func (h *Handler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	state := order.FilterStateFromQuery(r.URL.Query())
	buf, err := h.Service.ExportOrders(r.Context(), sess, state)
	if err != nil {
		h.Logger.Error("ExportOrders: service error", "error", err, "user_id", sess.User.ID)
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.Service.FileName()+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("ExportOrders: failed to write response", "error", err)
	}
}
