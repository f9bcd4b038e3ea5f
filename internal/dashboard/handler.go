package dashboard

import (
	"context"
	"net/http"

	dashboardDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/dashboard"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/transport"
)

type ServiceAPI interface {
	Refresh(ctx context.Context, checker permission.Checker) (Snapshot, error)
	Chart(ctx context.Context, checker permission.Checker, period string) ([]dashboardDatamodel.ChannelSales, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	snap, err := h.Service.Refresh(r.Context(), sess)
	if err != nil {
		h.Logger.Error("GetDashboard: service error", "error", err, "user_id", sess.User.ID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")
	sales, err := h.Service.Chart(r.Context(), sess, period)
	if err != nil {
		h.Logger.Error("GetSales: service error", "error", err, "period", period)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"sales": sales})
}
