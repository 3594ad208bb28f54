package model

// Category is a PPOB product category (credit, data, electricity, ...).
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

// Provider is a brand within a category (Telkomsel, PLN, ...).
type Provider struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BrandCode string `json:"brand_code"`
	IsActive  bool   `json:"is_active"`
}

// Product is a sellable item. FinalPrice already includes the reseller markup;
// the dashboard never recomputes it.
type Product struct {
	ID            int64  `json:"id"`
	ProductName   string `json:"product_name"`
	SKUCode       string `json:"sku_code"`
	Price         int64  `json:"price"`
	MarkupValue   int64  `json:"markup_value"`
	MarkupPercent int64  `json:"markup_percent"`
	Description   string `json:"deskripsi,omitempty"`
	FinalPrice    int64  `json:"final_price"`
	ProviderName  string `json:"provider_name,omitempty"`
	CategoryName  string `json:"category_name,omitempty"`
}
