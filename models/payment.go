package models

import "time"

const (
	PaymentStatusSuccess = "success"
	PaymentStatusError   = "error"
)

// PaymentVerificationResult is the normalized outcome of one payment
// verification call. Produced per call, never persisted.
type PaymentVerificationResult struct {
	TransactionRef string    `json:"tx_ref"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	CheckedAt      time.Time `json:"checked_at"`
	Status         string    `json:"status"`
	Message        string    `json:"message"`
}
