package model

import "time"

// Transaction is a PPOB purchase as tracked by the backend.
type Transaction struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	TargetNumber  string    `json:"target_number"`
	SerialNumber  string    `json:"serial_number,omitempty"`
	Price         int64     `json:"price"`
	TotalPrice    int64     `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"` // pending | paid | failed
	TxStatus      string    `json:"tx_status"`      // waiting | pending | processing | sukses | gagal
	CreatedAt     time.Time `json:"created_at"`
	ProductName   string    `json:"product_name,omitempty"`
	ProviderName  string    `json:"provider_name,omitempty"`
	CategoryName  string    `json:"category_name,omitempty"`
}

// Pagination mirrors the backend's list envelope.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
