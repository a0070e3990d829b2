package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mubarek26/MenuVerse/models"
)

// ErrItemNotFound is returned when the catalog has no item with the
// requested ID.
var ErrItemNotFound = errors.New("menu item not found")

// MenuClient reads the menu catalog collaborator. The catalog is
// read-only here; the ordering service only consumes availability,
// price and identity when building cart snapshots.
type MenuClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMenuClient(baseURL string, timeout time.Duration) *MenuClient {
	return &MenuClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMenu retrieves the full catalog.
func (c *MenuClient) FetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	url := fmt.Sprintf("%s/menu", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach menu service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu service returned %d", resp.StatusCode)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}
	return items, nil
}

// FetchItem resolves a single catalog item. The collaborator only
// exposes the full listing, so this scans one fetch of it.
func (c *MenuClient) FetchItem(ctx context.Context, id string) (models.MenuItem, error) {
	items, err := c.FetchMenu(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrItemNotFound
}
