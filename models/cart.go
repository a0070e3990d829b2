package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one distinct menu item in a cart. MenuItem is the snapshot
// taken when the line was created, so later catalog edits do not change
// an open cart.
type CartLine struct {
	ID       string   `json:"id"`
	Quantity int      `json:"quantity"`
	MenuItem MenuItem `json:"menuItem"`
}

// CartTotal derives the cart total from its lines. The total is never
// stored; every reader recomputes it from here.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.MenuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

type CreateCartResponse struct {
	CartID uuid.UUID `json:"cart_id"`
}

type AddItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
}

type UpdateQuantityRequest struct {
	// Pointer so that an explicit 0 (remove the line) survives binding.
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse is the wire view of a cart: lines, derived total, the
// order draft and whatever currently blocks submission.
type CartResponse struct {
	CartID   uuid.UUID       `json:"cart_id"`
	Items    []CartLine      `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Draft    OrderDraft      `json:"draft"`
	Status   WorkflowStatus  `json:"status"`
	Problems []string        `json:"problems,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
