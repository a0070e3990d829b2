package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mubarek26/MenuVerse/models"
)

// PaymentVerifier resolves the final status of a completed transaction.
type PaymentVerifier interface {
	Verify(ctx context.Context, txRef string) models.PaymentVerificationResult
}

type PaymentHandler struct {
	payments PaymentVerifier
}

func NewPaymentHandler(payments PaymentVerifier) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// VerifyPayment handles GET /payment/verify?tx_ref=...
// A missing reference yields the error result immediately, with no
// provider call at all.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		c.JSON(http.StatusOK, models.PaymentVerificationResult{
			TransactionRef: "N/A",
			Amount:         "N/A",
			Currency:       "N/A",
			CheckedAt:      time.Now().UTC(),
			Status:         models.PaymentStatusError,
			Message:        "no transaction reference provided",
		})
		return
	}

	result := h.payments.Verify(c.Request.Context(), txRef)
	log.Printf("Verified transaction %s: %s", txRef, result.Status)
	c.JSON(http.StatusOK, result)
}
