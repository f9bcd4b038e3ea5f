package inventory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	productDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/product"
	"github.com/frahmantamala/crm-console/internal/core/sequence"
	"github.com/frahmantamala/crm-console/internal/permission"
)

type API interface {
	ListProducts(ctx context.Context) ([]productDatamodel.Product, error)
	CreateProduct(ctx context.Context, p productDatamodel.Product) error
	UpdateProduct(ctx context.Context, id string, p productDatamodel.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ReceiveStock(ctx context.Context, receipt productDatamodel.StockReceipt) error
}

type Service struct {
	api    API
	logger *slog.Logger
	now    func() time.Time

	guard    sequence.Guard
	mu       sync.RWMutex
	products []productDatamodel.Product
}

func NewService(api API, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List fetches the catalogue. A failed fetch keeps the last list.
func (s *Service) List(ctx context.Context, checker permission.Checker) ([]productDatamodel.Product, error) {
	if err := permission.Require(checker, permission.ResourceInventory, permission.ActionRead); err != nil {
		return nil, err
	}

	ticket := s.guard.Issue()
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		s.logger.Error("failed to fetch products", "error", err)
		return nil, err
	}
	if products == nil {
		products = []productDatamodel.Product{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.guard.Accept(ticket) {
		s.products = products
	}
	return append([]productDatamodel.Product(nil), s.products...), nil
}

// Cached returns the last fetched list without calling the backend.
func (s *Service) Cached() []productDatamodel.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]productDatamodel.Product(nil), s.products...)
}

// Find looks a product up by backend id or product code. The backend has no
// single product endpoint, so this goes through the list.
func (s *Service) Find(ctx context.Context, checker permission.Checker, id string) (*productDatamodel.Product, error) {
	products, err := s.List(ctx, checker)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id || (products[i].ProductID != "" && products[i].ProductID == id) {
			return &products[i], nil
		}
	}
	return nil, internal.NewNotFoundError("product not found", internal.ErrCodeProductNotFound)
}

func (s *Service) Create(ctx context.Context, checker permission.Checker, form ProductForm) error {
	if err := permission.Require(checker, permission.ResourceInventory, permission.ActionWrite); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if err := s.api.CreateProduct(ctx, form.ToDataModel()); err != nil {
		s.logger.Error("failed to create product", "error", err, "name", form.Name)
		return err
	}
	s.logger.Info("product created", "name", form.Name)
	return nil
}

func (s *Service) Update(ctx context.Context, checker permission.Checker, id string, form ProductForm) error {
	if err := permission.Require(checker, permission.ResourceInventory, permission.ActionWrite); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if err := s.api.UpdateProduct(ctx, id, form.ToDataModel()); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", id)
		return err
	}
	s.logger.Info("product updated", "product_id", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, checker permission.Checker, id string) error {
	if err := permission.Require(checker, permission.ResourceInventory, permission.ActionWrite); err != nil {
		return err
	}

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("failed to delete product", "error", err, "product_id", id)
		return err
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// ReceiveStock records a batch for productID. Blank form fields default from
// the product; performedBy is the name of the operator.
func (s *Service) ReceiveStock(ctx context.Context, checker permission.Checker, performedBy, productID string, form StockForm) (*productDatamodel.StockReceipt, error) {
	if err := permission.Require(checker, permission.ResourceInventory, permission.ActionStock); err != nil {
		return nil, err
	}

	product, err := s.Find(ctx, checker, productID)
	if err != nil {
		return nil, err
	}

	form = form.WithDefaults(product, s.now())
	if err := form.Validate(); err != nil {
		return nil, err
	}

	receipt := form.ToReceipt(product.ID, performedBy)
	if err := s.api.ReceiveStock(ctx, receipt); err != nil {
		s.logger.Error("failed to receive stock", "error", err, "product_id", product.ID, "batch", form.BatchCode)
		return nil, err
	}

	s.logger.Info("stock received",
		"product_id", product.ID,
		"batch", receipt.BatchData.BatchCode,
		"quantity", receipt.Quantity,
		"performed_by", performedBy)
	return &receipt, nil
}
