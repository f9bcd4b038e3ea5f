package order

import (
	"context"
	"net/http"
	"strconv"

	orderDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/order"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, checker permission.Checker, state FilterState) ([]Order, error)
	UpdateStatus(ctx context.Context, checker permission.Checker, id string, status string) (*Order, error)
	Counts() map[string]int
}

type HistoryAPI interface {
	History(ctx context.Context, orderID string) ([]orderDatamodel.Transition, error)
	Recent(ctx context.Context, limit int) ([]orderDatamodel.Transition, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Journal HistoryAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, journal HistoryAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Journal:     journal,
	}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	state := FilterStateFromQuery(r.URL.Query())
	orders, err := h.Service.List(r.Context(), sess, state)
	if err != nil {
		h.Logger.Error("ListOrders: service error", "error", err, "user_id", sess.User.ID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Orders: orders,
		Total:  len(orders),
		Counts: h.Service.Counts(),
		Filter: state,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var dto StatusUpdateDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), sess, id, dto.Status)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "order_id", id, "user_id", sess.User.ID)
		h.WriteAppError(w, err)
		return
	}

	h.Logger.Info("UpdateStatus: order status changed",
		"order_id", id,
		"status", updated.Status,
		"user_id", sess.User.ID)

	h.WriteJSON(w, http.StatusOK, updated)
}

// History returns the recorded transitions of one order, or the most recent
// ones across all orders when id is "recent".
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Session(w, r); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var (
		list []orderDatamodel.Transition
		err  error
	)
	if id == "recent" {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		list, err = h.Journal.Recent(r.Context(), limit)
	} else {
		list, err = h.Journal.History(r.Context(), id)
	}
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if list == nil {
		list = []orderDatamodel.Transition{}
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"transitions": list})
}
