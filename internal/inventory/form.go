package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/internal/core/common/validation"
	productDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/product"
)

const (
	MinMedia         = 2
	MaxMedia         = 5
	DefaultStockUnit = "ml"
	DefaultReason    = "Stock received"
	batchCodePrefix  = "BATCH-"
)

type BaseVariantForm struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

type VariantForm struct {
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	PriceIncrement float64 `json:"priceIncrement"`
}

// ProductForm is the input of create and update.
type ProductForm struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Badge           string          `json:"badge"`
	Description     string          `json:"description"`
	BaseVariant     BaseVariantForm `json:"baseVariant"`
	CurrentStock    float64         `json:"currentStock"`
	CostPrice       float64         `json:"costPrice"`
	DiscountPercent float64         `json:"discountPercent"`
	Benefits        []string        `json:"benefits"`
	Variants        []VariantForm   `json:"variants"`
	Media           []string        `json:"media"`
}

func (f ProductForm) Validate() error {
	v := validation.NewValidator()
	v.Field("name", f.Name).Required().MaxLength(200)
	v.Field("description", f.Description).Required()
	v.Field("baseVariant.label", f.BaseVariant.Label).Required()
	v.Field("baseVariant.quantity", f.BaseVariant.Quantity).Positive()
	v.Field("baseVariant.price", f.BaseVariant.Price).Positive()
	v.Field("discountPercent", f.DiscountPercent).Between(0, 100)
	v.Field("costPrice", f.CostPrice).NotNegative()
	v.Field("currentStock", f.CurrentStock).NotNegative()
	v.Field("media", f.Media).MinItems(MinMedia).MaxItems(MaxMedia)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ToDataModel builds the request body. Blank benefits and variants without
// a label or value are dropped; the legacy flat fields mirror the base
// variant.
func (f ProductForm) ToDataModel() productDatamodel.Product {
	unit := f.BaseVariant.Unit

	benefits := make([]string, 0, len(f.Benefits))
	for _, b := range f.Benefits {
		if strings.TrimSpace(b) != "" {
			benefits = append(benefits, b)
		}
	}

	variants := make([]productDatamodel.Variant, 0, len(f.Variants))
	for _, vr := range f.Variants {
		if vr.Label == "" || vr.Value == 0 {
			continue
		}
		vu := vr.Unit
		if vu == "" {
			vu = unit
		}
		variants = append(variants, productDatamodel.Variant{
			Label:          vr.Label,
			Value:          vr.Value,
			Unit:           vu,
			PriceIncrement: vr.PriceIncrement,
		})
	}

	media := f.Media
	if media == nil {
		media = []string{}
	}

	return productDatamodel.Product{
		Name:        strings.TrimSpace(f.Name),
		Category:    f.Category,
		Badge:       f.Badge,
		Description: f.Description,
		BaseVariant: productDatamodel.BaseVariant{
			Label:    f.BaseVariant.Label,
			Quantity: f.BaseVariant.Quantity,
			Unit:     unit,
			Price:    f.BaseVariant.Price,
		},
		BasePrice:       strconv.FormatFloat(f.BaseVariant.Price, 'f', -1, 64),
		Quantity:        f.BaseVariant.Quantity,
		Unit:            unit,
		CurrentStock:    f.CurrentStock,
		CostPrice:       f.CostPrice,
		DiscountPercent: f.DiscountPercent,
		Benefits:        benefits,
		Variants:        variants,
		Media:           media,
	}
}

// FormFromProduct prefills an edit form. Products saved before variants
// existed only carry basePrice.
func FormFromProduct(p *productDatamodel.Product) ProductForm {
	price := p.BaseVariant.Price
	if price == 0 {
		price, _ = strconv.ParseFloat(p.BasePrice, 64)
	}
	quantity := p.BaseVariant.Quantity
	if quantity == 0 {
		quantity = p.Quantity
	}
	unit := p.BaseVariant.Unit
	if unit == "" {
		unit = p.Unit
	}

	variants := make([]VariantForm, len(p.Variants))
	for i, vr := range p.Variants {
		variants[i] = VariantForm(vr)
	}

	return ProductForm{
		Name:            p.Name,
		Category:        p.Category,
		Badge:           p.Badge,
		Description:     p.Description,
		BaseVariant:     BaseVariantForm{Label: p.BaseVariant.Label, Quantity: quantity, Unit: unit, Price: price},
		CurrentStock:    p.CurrentStock,
		CostPrice:       p.CostPrice,
		DiscountPercent: p.DiscountPercent,
		Benefits:        append([]string(nil), p.Benefits...),
		Variants:        variants,
		Media:           append([]string(nil), p.Media...),
	}
}

// StockForm is the input of a stock receipt. Zero fields take the defaults
// of the product the stock is received for.
type StockForm struct {
	BatchCode            string   `json:"batchCode"`
	ManufacturedDate     string   `json:"manufacturedDate"`
	ExpiryDate           string   `json:"expiryDate"`
	PurchasePricePerUnit *float64 `json:"purchasePricePerUnit"`
	Quantity             float64  `json:"quantity"`
	Unit                 string   `json:"unit"`
	Reason               string   `json:"reason"`
}

// WithDefaults fills the blank fields from p and now.
func (f StockForm) WithDefaults(p *productDatamodel.Product, now time.Time) StockForm {
	if f.BatchCode == "" {
		f.BatchCode = fmt.Sprintf("%s%d", batchCodePrefix, now.UnixMilli())
	}
	if f.ManufacturedDate == "" {
		f.ManufacturedDate = now.Format(validation.DateLayout)
	}
	if f.PurchasePricePerUnit == nil {
		price := 0.0
		if p != nil {
			price = p.CostPrice
		}
		f.PurchasePricePerUnit = &price
	}
	if f.Unit == "" {
		f.Unit = DefaultStockUnit
		if p != nil && p.Unit != "" {
			f.Unit = p.Unit
		}
	}
	if f.Reason == "" {
		f.Reason = DefaultReason
	}
	return f
}

func (f StockForm) Validate() error {
	v := validation.NewValidator()
	v.Field("batchCode", f.BatchCode).Required()
	v.Field("quantity", f.Quantity).Positive()
	v.Field("manufacturedDate", f.ManufacturedDate).Required().Date()
	v.Field("expiryDate", f.ExpiryDate).Date().Custom(func(value interface{}) *internal.AppError {
		expiry, err := time.Parse(validation.DateLayout, f.ExpiryDate)
		if err != nil {
			return nil
		}
		made, err := time.Parse(validation.DateLayout, f.ManufacturedDate)
		if err != nil {
			return nil
		}
		if expiry.Before(made) {
			return internal.NewValidationFieldError("expiryDate", "expiryDate cannot be before manufacturedDate", internal.ErrCodeInvalidDate)
		}
		return nil
	})
	if f.PurchasePricePerUnit != nil {
		v.Field("purchasePricePerUnit", *f.PurchasePricePerUnit).NotNegative()
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (f StockForm) ToReceipt(productID, performedBy string) productDatamodel.StockReceipt {
	var expiry *string
	if f.ExpiryDate != "" {
		e := f.ExpiryDate
		expiry = &e
	}
	price := 0.0
	if f.PurchasePricePerUnit != nil {
		price = *f.PurchasePricePerUnit
	}
	return productDatamodel.StockReceipt{
		ProductID: productID,
		BatchData: productDatamodel.Batch{
			BatchCode:            f.BatchCode,
			ManufacturedDate:     f.ManufacturedDate,
			ExpiryDate:           expiry,
			PurchasePricePerUnit: price,
			Unit:                 f.Unit,
			Reason:               f.Reason,
		},
		Quantity:    f.Quantity,
		PerformedBy: performedBy,
	}
}
