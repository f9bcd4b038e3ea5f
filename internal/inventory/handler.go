package inventory

import (
	"context"
	"net/http"

	productDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/product"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, checker permission.Checker) ([]productDatamodel.Product, error)
	Create(ctx context.Context, checker permission.Checker, form ProductForm) error
	Update(ctx context.Context, checker permission.Checker, id string, form ProductForm) error
	Delete(ctx context.Context, checker permission.Checker, id string) error
	ReceiveStock(ctx context.Context, checker permission.Checker, performedBy, productID string, form StockForm) (*productDatamodel.StockReceipt, error)
}

type ProductsResponse struct {
	Products []productDatamodel.Product `json:"products"`
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	products, err := h.Service.List(r.Context(), sess)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	var form ProductForm
	if !h.DecodeJSON(w, r, &form) {
		return
	}

	if err := h.Service.Create(r.Context(), sess, form); err != nil {
		h.Logger.Error("CreateProduct: service error", "error", err, "user_id", sess.User.ID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Product created"})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var form ProductForm
	if !h.DecodeJSON(w, r, &form) {
		return
	}

	if err := h.Service.Update(r.Context(), sess, id, form); err != nil {
		h.Logger.Error("UpdateProduct: service error", "error", err, "product_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), sess, id); err != nil {
		h.Logger.Error("DeleteProduct: service error", "error", err, "product_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *Handler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	var form StockForm
	if !h.DecodeJSON(w, r, &form) {
		return
	}

	receipt, err := h.Service.ReceiveStock(r.Context(), sess, sess.User.Name, id, form)
	if err != nil {
		h.Logger.Error("ReceiveStock: service error", "error", err, "product_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, receipt)
}
