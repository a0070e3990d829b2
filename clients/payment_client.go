package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mubarek26/MenuVerse/models"
)

// providerStatusSuccess is the one literal the provider uses for a paid
// transaction. Every other status, including an absent field, fails
// closed to an error result.
const providerStatusSuccess = "success"

const (
	successMessage  = "Thank you for your payment!"
	declinedMessage = "Your payment could not be processed."
	fallbackMessage = "Could not verify your payment."
)

// PaymentClient verifies completed transactions against the payment
// provider proxy.
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type verifyRequest struct {
	TxRef string `json:"tx_ref"`
}

// Verify issues exactly one verification call for the reference and
// normalizes whatever comes back. It never returns a Go error: every
// transport, status or shape failure is folded into an error-status
// result so the caller can always render something.
func (c *PaymentClient) Verify(ctx context.Context, txRef string) models.PaymentVerificationResult {
	result := models.PaymentVerificationResult{
		TransactionRef: txRef,
		Amount:         "N/A",
		Currency:       "N/A",
		CheckedAt:      time.Now().UTC(),
		Status:         models.PaymentStatusError,
		Message:        fallbackMessage,
	}

	jsonData, err := json.Marshal(verifyRequest{TxRef: txRef})
	if err != nil {
		result.Message = err.Error()
		return result
	}

	url := fmt.Sprintf("%s/payment/verifyPayment", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		result.Message = err.Error()
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Message = fmt.Sprintf("verification failed: %v", err)
		return result
	}
	defer resp.Body.Close()

	var payload map[string]any
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := stringField(payload, "message"); msg != "" {
			result.Message = msg
		} else {
			result.Message = fmt.Sprintf("verification failed with status %d", resp.StatusCode)
		}
		return result
	}
	if decodeErr != nil {
		return result
	}

	data := unwrap(payload)

	status := stringField(data, "status")
	if status == "" {
		status = stringField(payload, "status")
	}

	if status == providerStatusSuccess {
		result.Status = models.PaymentStatusSuccess
		result.Message = successMessage
	} else if msg := stringField(data, "message"); msg != "" {
		result.Message = msg
	} else {
		result.Message = declinedMessage
	}

	if ref := stringField(data, "tx_ref"); ref != "" {
		result.TransactionRef = ref
	}
	if amount := valueAsString(data["amount"]); amount != "" {
		result.Amount = amount
	}
	if currency := stringField(data, "currency"); currency != "" {
		result.Currency = currency
	}
	return result
}

// unwrap digs out the provider's nested data.data payload and falls
// back to the top-level object when the nesting is absent.
func unwrap(payload map[string]any) map[string]any {
	if outer, ok := payload["data"].(map[string]any); ok {
		if inner, ok := outer["data"].(map[string]any); ok {
			return inner
		}
		return outer
	}
	return payload
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// valueAsString renders a field the provider sends as either a string
// or a JSON number.
func valueAsString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
	default:
		return ""
	}
}
