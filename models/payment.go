package models

const PaymentTypeBalance = "balance"

// Payment pays for exactly one transaction (an order or an order
// change); it is never reused.
type Payment struct {
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// BalancePayment builds a balance payment for the given total.
func BalancePayment(currency, amount string) Payment {
	return Payment{
		Type:     PaymentTypeBalance,
		Currency: currency,
		Amount:   amount,
	}
}
