package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mubarek26/MenuVerse/models"
)

// OrderClient submits orders to the restaurant backend.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit sends the order in a single POST. A 2xx response means the
// backend owns the order; the response body is ignored. There is no
// automatic retry — resubmission is a fresh user action.
func (c *OrderClient) Submit(ctx context.Context, sub models.OrderSubmission) error {
	jsonData, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	url := fmt.Sprintf("%s/order", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach order backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("order backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
