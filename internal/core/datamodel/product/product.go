package product

type BaseVariant struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

type Variant struct {
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	PriceIncrement float64 `json:"priceIncrement"`
}

type Product struct {
	ID              string      `json:"_id,omitempty"`
	ProductID       string      `json:"productId,omitempty"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Badge           string      `json:"badge,omitempty"`
	Description     string      `json:"description"`
	BaseVariant     BaseVariant `json:"baseVariant"`
	BasePrice       string      `json:"basePrice"`
	Quantity        float64     `json:"quantity"`
	Unit            string      `json:"unit"`
	CurrentStock    float64     `json:"currentStock"`
	CostPrice       float64     `json:"costPrice"`
	DiscountPercent float64     `json:"discountPercent"`
	Benefits        []string    `json:"benefits"`
	Variants        []Variant   `json:"variants"`
	Media           []string    `json:"media"`
}

type Batch struct {
	BatchCode            string  `json:"batchCode"`
	ManufacturedDate     string  `json:"manufacturedDate"`
	ExpiryDate           *string `json:"expiryDate"`
	PurchasePricePerUnit float64 `json:"purchasePricePerUnit"`
	Unit                 string  `json:"unit"`
	Reason               string  `json:"reason"`
}

// StockReceipt is the body of POST /stock/receive.
type StockReceipt struct {
	ProductID   string  `json:"productId"`
	BatchData   Batch   `json:"batchData"`
	Quantity    float64 `json:"quantity"`
	PerformedBy string  `json:"performedBy"`
}
