package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mubarek26/MenuVerse/clients"
	"github.com/Mubarek26/MenuVerse/geo"
	"github.com/Mubarek26/MenuVerse/models"
	"github.com/Mubarek26/MenuVerse/store"
	"github.com/Mubarek26/MenuVerse/validators"
)

// MenuFetcher resolves catalog items for cart snapshots.
type MenuFetcher interface {
	FetchItem(ctx context.Context, id string) (models.MenuItem, error)
}

type CartHandler struct {
	store   *store.CartStore
	menu    MenuFetcher
	locator geo.Locator
}

func NewCartHandler(cartStore *store.CartStore, menu MenuFetcher, locator geo.Locator) *CartHandler {
	return &CartHandler{
		store:   cartStore,
		menu:    menu,
		locator: locator,
	}
}

// CreateCart handles POST /carts
func (h *CartHandler) CreateCart(c *gin.Context) {
	cartID := h.store.Create()
	log.Printf("Created cart %s", cartID)
	c.JSON(http.StatusCreated, models.CreateCartResponse{CartID: cartID})
}

// GetCart handles GET /carts/{cartId}
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	cart, exists := h.store.Get(cartID)
	if !exists {
		cartNotFound(c)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// AddItem handles POST /carts/{cartId}/items
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	item, err := h.menu.FetchItem(c.Request.Context(), req.MenuItemID)
	if err != nil {
		if errors.Is(err, clients.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: "Menu item not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "MENU_UNAVAILABLE",
			Message: "Failed to look up menu item",
			Details: err.Error(),
		})
		return
	}

	if !item.Available {
		// Unavailable items do not change the cart; the current
		// state is returned unchanged.
		log.Printf("Menu item %s is unavailable, ignoring add to cart %s", item.ID, cartID)
	}

	cart, exists := h.store.AddItem(cartID, item)
	if !exists {
		cartNotFound(c)
		return
	}

	log.Printf("Added item %s to cart %s", req.MenuItemID, cartID)
	c.JSON(http.StatusOK, cartResponse(cart))
}

// UpdateItem handles PUT /carts/{cartId}/items/{itemId}
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	cart, exists := h.store.UpdateQuantity(cartID, c.Param("itemId"), *req.Quantity)
	if !exists {
		cartNotFound(c)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// RemoveItem handles DELETE /carts/{cartId}/items/{itemId}
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	cart, exists := h.store.RemoveItem(cartID, c.Param("itemId"))
	if !exists {
		cartNotFound(c)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// ClearCart handles DELETE /carts/{cartId}/items
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	if !h.store.Clear(cartID) {
		cartNotFound(c)
		return
	}
	log.Printf("Cleared cart %s", cartID)
	c.Status(http.StatusNoContent)
}

// DeleteCart handles DELETE /carts/{cartId}
func (h *CartHandler) DeleteCart(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	if !h.store.Delete(cartID) {
		cartNotFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateDraft handles PUT /carts/{cartId}/draft
func (h *CartHandler) UpdateDraft(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	cart, becameDelivery, exists := h.store.ApplyDraftPatch(cartID, patch)
	if !exists {
		cartNotFound(c)
		return
	}

	// The locator is asked exactly once, on the transition into
	// Delivery. Denial is not an error: the location stays unset and
	// the validation gate blocks checkout until the map point exists.
	if becameDelivery && cart.Draft.DeviceLocation == nil {
		pos, err := h.locator.CurrentPosition(c.Request.Context())
		if err != nil {
			log.Printf("No device location for cart %s: %v", cartID, err)
		} else {
			h.store.SetDeviceLocation(cartID, models.LatLng{Lat: pos.Lat, Lng: pos.Lng})
			cart, _ = h.store.Get(cartID)
		}
	}

	c.JSON(http.StatusOK, cartResponse(cart))
}

// SelectLocation handles PUT /carts/{cartId}/draft/location
func (h *CartHandler) SelectLocation(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	var req models.SelectLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if !h.store.SelectDeliveryLocation(cartID, models.LatLng{Lat: *req.Lat, Lng: *req.Lng}) {
		cartNotFound(c)
		return
	}

	cart, _ := h.store.Get(cartID)
	c.JSON(http.StatusOK, cartResponse(cart))
}

func parseCartID(c *gin.Context) (uuid.UUID, bool) {
	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid cart ID",
			Details: "Cart ID must be a valid UUID",
		})
		return uuid.UUID{}, false
	}
	return cartID, true
}

func cartNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "NOT_FOUND",
		Message: "Cart not found",
	})
}

func cartResponse(cart store.Cart) models.CartResponse {
	return models.CartResponse{
		CartID:   cart.ID,
		Items:    cart.Lines,
		Total:    models.CartTotal(cart.Lines),
		Draft:    cart.Draft,
		Status:   cart.Status,
		Problems: validators.ValidateDraft(cart.Draft),
	}
}
