package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mubarek26/MenuVerse/models"
)

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// Cart is one customer session: the lines, the order draft and where
// the checkout workflow currently stands.
type Cart struct {
	ID     uuid.UUID
	Lines  []models.CartLine
	Draft  models.OrderDraft
	Status models.WorkflowStatus

	submitting bool
}

// CartStore is the single source of truth for cart contents. All
// mutations happen under its lock; totals are derived on read.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[uuid.UUID]*Cart),
	}
}

// Create opens a new cart session and returns its ID.
func (s *CartStore) Create() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.carts[id] = &Cart{
		ID:     id,
		Lines:  []models.CartLine{},
		Status: models.StatusCollecting,
	}
	return id
}

// Get returns a snapshot of the cart. The caller owns the copy.
func (s *CartStore) Get(id uuid.UUID) (Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[id]
	if !exists {
		return Cart{}, false
	}
	return snapshot(cart), true
}

// Delete tears the session down entirely.
func (s *CartStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.carts[id]; !exists {
		return false
	}
	delete(s.carts, id)
	return true
}

// AddItem adds one unit of the menu item to the cart. An unavailable
// item is silently ignored; an existing line has its quantity bumped so
// a cart never holds two lines for the same item.
func (s *CartStore) AddItem(id uuid.UUID, item models.MenuItem) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return Cart{}, false
	}
	if !item.Available {
		return snapshot(cart), true
	}

	for i := range cart.Lines {
		if cart.Lines[i].ID == item.ID {
			cart.Lines[i].Quantity++
			return snapshot(cart), true
		}
	}
	cart.Lines = append(cart.Lines, models.CartLine{
		ID:       item.ID,
		Quantity: 1,
		MenuItem: item,
	})
	return snapshot(cart), true
}

// UpdateQuantity sets a line's quantity to exactly qty. Anything at or
// below zero removes the line; an unknown item ID is a no-op.
func (s *CartStore) UpdateQuantity(id uuid.UUID, itemID string, qty int) (Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return Cart{}, false
	}

	for i := range cart.Lines {
		if cart.Lines[i].ID != itemID {
			continue
		}
		if qty <= 0 {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
		} else {
			cart.Lines[i].Quantity = qty
		}
		break
	}
	return snapshot(cart), true
}

// RemoveItem deletes the matching line if present.
func (s *CartStore) RemoveItem(id uuid.UUID, itemID string) (Cart, bool) {
	return s.UpdateQuantity(id, itemID, 0)
}

// Clear empties the cart's lines.
func (s *CartStore) Clear(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return false
	}
	cart.Lines = []models.CartLine{}
	return true
}

// Total derives the cart total from its lines at call time.
func (s *CartStore) Total(id uuid.UUID) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[id]
	if !exists {
		return decimal.Zero, false
	}
	return models.CartTotal(cart.Lines), true
}

// ApplyDraftPatch merges the patch into the cart's order draft and
// reports whether the service type just transitioned to Delivery, which
// is the moment the location collaborator should be asked once.
func (s *CartStore) ApplyDraftPatch(id uuid.UUID, patch models.DraftPatch) (cart Cart, becameDelivery bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.carts[id]
	if !exists {
		return Cart{}, false, false
	}

	if patch.ServiceType != nil {
		becameDelivery = *patch.ServiceType == models.ServiceDelivery &&
			c.Draft.ServiceType != models.ServiceDelivery
		c.Draft.ServiceType = *patch.ServiceType
	}
	if patch.TableNumber != nil {
		c.Draft.TableNumber = *patch.TableNumber
	}
	if patch.PhoneNumber != nil {
		c.Draft.PhoneNumber = *patch.PhoneNumber
	}
	if patch.DeviceLocation != nil {
		loc := *patch.DeviceLocation
		c.Draft.DeviceLocation = &loc
	}
	if patch.SpecialInstructions != nil {
		c.Draft.SpecialInstructions = *patch.SpecialInstructions
	}
	return snapshot(c), becameDelivery, true
}

// SetDeviceLocation records the device-derived position.
func (s *CartStore) SetDeviceLocation(id uuid.UUID, loc models.LatLng) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return false
	}
	cart.Draft.DeviceLocation = &loc
	return true
}

// SelectDeliveryLocation records an explicit pick on the map. The last
// explicit pick wins over the device-derived position.
func (s *CartStore) SelectDeliveryLocation(id uuid.UUID, loc models.LatLng) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return false
	}
	cart.Draft.SelectedLocation = &loc
	return true
}

// BeginSubmission flips the in-flight flag and builds the submission
// payload in one locked step, so two overlapping checkouts cannot both
// reach the network. The payload carries no total.
func (s *CartStore) BeginSubmission(id uuid.UUID) (models.OrderSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return models.OrderSubmission{}, ErrCartNotFound
	}
	if cart.submitting {
		return models.OrderSubmission{}, ErrSubmissionInFlight
	}
	if len(cart.Lines) == 0 {
		return models.OrderSubmission{}, ErrEmptyCart
	}

	cart.submitting = true
	cart.Status = models.StatusSubmitting

	sub := models.OrderSubmission{
		Items:       append([]models.CartLine{}, cart.Lines...),
		OrderType:   cart.Draft.ServiceType,
		PhoneNumber: cart.Draft.PhoneNumber,
		Notes:       cart.Draft.SpecialInstructions,
	}
	if cart.Draft.ServiceType == models.ServiceDineIn {
		sub.TableNumber = cart.Draft.TableNumber
	}
	if cart.Draft.ServiceType == models.ServiceDelivery {
		sub.Location = cart.Draft.DeliveryLocation()
	}
	return sub, nil
}

// EndSubmission releases the in-flight flag. On success the cart is
// cleared and the draft reset; on failure everything stays in place so
// the customer can resubmit.
func (s *CartStore) EndSubmission(id uuid.UUID, success bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[id]
	if !exists {
		return false
	}
	cart.submitting = false
	if success {
		cart.Lines = []models.CartLine{}
		cart.Draft = models.OrderDraft{}
		cart.Status = models.StatusSubmitted
	} else {
		cart.Status = models.StatusFailed
	}
	return true
}

func snapshot(cart *Cart) Cart {
	copied := *cart
	copied.Lines = append([]models.CartLine{}, cart.Lines...)
	return copied
}
