package model

import (
	"strings"
	"time"
)

// TopUpOption is a preset top-up amount offered by the backend.
type TopUpOption struct {
	Amount  int64  `json:"amount"` // smallest currency unit (IDR)
	Label   string `json:"label"`
	Popular bool   `json:"popular"`
}

type PaymentMethodType string

const (
	MethodQRIS         PaymentMethodType = "qris"
	MethodBankTransfer PaymentMethodType = "bank_transfer"
	MethodEWallet      PaymentMethodType = "e-wallet"
)

// PaymentMethod is a selectable payment channel. Fee is either a flat amount
// or, when below 100, a percentage of the top-up amount. The threshold rule is
// the backend's convention and must be reproduced exactly.
type PaymentMethod struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Type        PaymentMethodType `json:"type"`
	Description string            `json:"description,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Fee         int64             `json:"fee"`
	Image       string            `json:"image,omitempty"`
}

// TopUpOptions is the read-only bundle fetched at flow start.
type TopUpOptions struct {
	Amounts        []TopUpOption   `json:"amounts"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	MinAmount      int64           `json:"minAmount"`
	MaxAmount      int64           `json:"maxAmount"`
}

// MethodByCode returns the method with the given code, if present.
func (o *TopUpOptions) MethodByCode(code string) (PaymentMethod, bool) {
	for _, m := range o.PaymentMethods {
		if m.Code == code {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// PaymentPresentation carries whatever the gateway returned to present the
// payment with. Zero or more fields may be set simultaneously.
type PaymentPresentation struct {
	Reference  string `json:"reference,omitempty"`
	PaymentURL string `json:"paymentUrl,omitempty"`
	QRString   string `json:"qrString,omitempty"`
	VANumber   string `json:"vaNumber,omitempty"`
}

// PendingOrder is a created but unresolved top-up order. It is never mutated
// after creation; resolution is observed through status polls.
type PendingOrder struct {
	OrderID       string              `json:"orderId"`
	Amount        int64               `json:"amount"`
	TotalAmount   int64               `json:"totalAmount"`
	PaymentFee    int64               `json:"paymentFee"`
	SystemFee     int64               `json:"systemFee"`
	PaymentMethod string              `json:"paymentMethod"`
	Payment       PaymentPresentation `json:"payment"`
	ExpiresAt     time.Time           `json:"expiresAt"`
}

// PaymentState is the client-side tri-state a backend status string maps onto.
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
	PaymentFailed  PaymentState = "failed"
)

// MapPaymentStatus folds the backend's status vocabulary into the tri-state.
// Only the paid states drive an automatic transition; failed states are mapped
// for display but never acted on.
func MapPaymentStatus(s string) PaymentState {
	switch strings.ToUpper(s) {
	case "PAID", "SUCCESS", "PAID_OFF", "SETTLEMENT":
		return PaymentPaid
	case "FAILED", "EXPIRED", "EXPIRE", "CANCELLED", "CANCEL", "DENY":
		return PaymentFailed
	default:
		return PaymentPending
	}
}

// PaymentStatus is the result of one status poll; ephemeral, never persisted.
type PaymentStatus struct {
	OrderID       string       `json:"orderId"`
	RawStatus     string       `json:"status"`
	State         PaymentState `json:"state"`
	Amount        int64        `json:"amount"`
	PaymentMethod string       `json:"paymentMethod"`
	Message       string       `json:"message,omitempty"`
}

// TopUpHistoryEntry is one row of the user's top-up history.
type TopUpHistoryEntry struct {
	ID            int64     `json:"id"`
	OrderID       string    `json:"orderId"`
	Amount        int64     `json:"amount"`
	PaymentFee    int64     `json:"paymentFee"`
	SystemFee     int64     `json:"systemFee"`
	TotalAmount   int64     `json:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	StatusMessage string    `json:"statusMessage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
