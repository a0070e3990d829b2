package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mubarek26/MenuVerse/models"
	"github.com/Mubarek26/MenuVerse/store"
)

// OrderSubmitter sends a validated order to the restaurant backend.
type OrderSubmitter interface {
	Submit(ctx context.Context, sub models.OrderSubmission) error
}

// EventPublisher tells the kitchen about orders the backend accepted.
type EventPublisher interface {
	PublishOrderPlaced(evt models.OrderPlacedEvent) error
}

// Validator is the composer's submission gate.
type Validator func(models.OrderDraft) []string

type CheckoutHandler struct {
	store    *store.CartStore
	orders   OrderSubmitter
	events   EventPublisher
	validate Validator
}

// NewCheckoutHandler wires the checkout workflow. events may be nil
// when no queue is configured.
func NewCheckoutHandler(cartStore *store.CartStore, orders OrderSubmitter, events EventPublisher, validate Validator) *CheckoutHandler {
	return &CheckoutHandler{
		store:    cartStore,
		orders:   orders,
		events:   events,
		validate: validate,
	}
}

// Checkout handles POST /carts/{cartId}/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	cart, exists := h.store.Get(cartID)
	if !exists {
		cartNotFound(c)
		return
	}

	if problems := h.validate(cart.Draft); len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "INVALID_ORDER",
			Message: "Order details are incomplete",
			Details: strings.Join(problems, "; "),
		})
		return
	}

	// The in-flight flag is taken before the network call and released
	// on every exit path, so a rapid double submit cannot send twice.
	sub, err := h.store.BeginSubmission(cartID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCartNotFound):
			cartNotFound(c)
		case errors.Is(err, store.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "EMPTY_CART",
				Message: "Cannot checkout an empty cart",
			})
		case errors.Is(err, store.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "SUBMISSION_IN_FLIGHT",
				Message: "This cart is already being submitted",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "CHECKOUT_ERROR",
				Message: "Failed to start checkout",
				Details: err.Error(),
			})
		}
		return
	}

	log.Printf("Submitting order for cart %s (%d items)", cartID, len(sub.Items))

	if err := h.orders.Submit(c.Request.Context(), sub); err != nil {
		h.store.EndSubmission(cartID, false)
		log.Printf("Order submission failed for cart %s: %v", cartID, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "SUBMISSION_FAILED",
			Message: "Failed to submit order",
			Details: err.Error(),
		})
		return
	}

	// The cart is cleared only now, after the backend acknowledged the
	// order. Never optimistically.
	h.store.EndSubmission(cartID, true)
	log.Printf("Order for cart %s accepted by backend", cartID)

	if h.events != nil {
		evt := models.OrderPlacedEvent{
			CartID:      cartID,
			OrderType:   sub.OrderType,
			TableNumber: sub.TableNumber,
			Items:       sub.Items,
			Notes:       sub.Notes,
			PlacedAt:    time.Now().UTC(),
		}
		if err := h.events.PublishOrderPlaced(evt); err != nil {
			// The backend already owns the order; the kitchen feed is
			// best effort.
			log.Printf("Failed to publish order-placed event for cart %s: %v", cartID, err)
		}
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{Status: models.StatusSubmitted})
}
