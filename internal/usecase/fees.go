package usecase

import "ppob-dashboard/internal/domain/model"

// Fee rules are the backend's product decision, reproduced exactly: a method
// fee below 100 is a percentage of the amount, otherwise it is a flat amount.
// The same functions feed the live summary and the payment dialog so the two
// totals can never diverge.

// MethodFee returns the payment channel's fee for the given amount.
func MethodFee(amount int64, m model.PaymentMethod) int64 {
	if amount <= 0 && m.Fee < 100 {
		return 0
	}
	if m.Fee < 100 {
		return ceilDiv(amount*m.Fee, 100)
	}
	return m.Fee
}

// SystemFee is the fixed 1% platform fee, rounded up.
func SystemFee(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return ceilDiv(amount, 100)
}

// TotalAmount = amount + method fee + system fee.
func TotalAmount(amount int64, m model.PaymentMethod) int64 {
	return amount + MethodFee(amount, m) + SystemFee(amount)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
