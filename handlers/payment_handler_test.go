package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Mubarek26/MenuVerse/models"
)

type fakeVerifier struct {
	calls  int
	result models.PaymentVerificationResult
}

func (f *fakeVerifier) Verify(ctx context.Context, txRef string) models.PaymentVerificationResult {
	f.calls++
	return f.result
}

func paymentRouter(v PaymentVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/payment/verify", NewPaymentHandler(v).VerifyPayment)
	return router
}

func TestVerifyPaymentMissingReference(t *testing.T) {
	verifier := &fakeVerifier{}
	router := paymentRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/verify", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if verifier.calls != 0 {
		t.Fatalf("expected zero provider calls without a reference, got %d", verifier.calls)
	}

	var result models.PaymentVerificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Status != models.PaymentStatusError {
		t.Errorf("expected error status, got %s", result.Status)
	}
	if result.Message != "no transaction reference provided" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestVerifyPaymentPassesReferenceThrough(t *testing.T) {
	verifier := &fakeVerifier{
		result: models.PaymentVerificationResult{
			TransactionRef: "abc123",
			Amount:         "150",
			Currency:       "ETB",
			Status:         models.PaymentStatusSuccess,
			Message:        "Thank you for your payment!",
		},
	}
	router := paymentRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/verify?tx_ref=abc123", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if verifier.calls != 1 {
		t.Fatalf("expected one provider call, got %d", verifier.calls)
	}

	var result models.PaymentVerificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Status != models.PaymentStatusSuccess || result.Currency != "ETB" {
		t.Errorf("unexpected result: %+v", result)
	}
}
