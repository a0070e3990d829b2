package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mubarek26/MenuVerse/models"
)

func menuItem(id string, price int64, available bool) models.MenuItem {
	return models.MenuItem{
		ID:        id,
		Name:      models.LocalizedText{En: id},
		Price:     decimal.NewFromInt(price),
		Available: available,
	}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.AddItem(id, menuItem("doro-wat", 250, true))
	s.AddItem(id, menuItem("tibs", 180, true))
	cart, ok := s.AddItem(id, menuItem("doro-wat", 250, true))
	if !ok {
		t.Fatal("expected cart to exist")
	}

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].ID != "doro-wat" || cart.Lines[0].Quantity != 2 {
		t.Errorf("expected doro-wat x2, got %s x%d", cart.Lines[0].ID, cart.Lines[0].Quantity)
	}
	if cart.Lines[1].Quantity != 1 {
		t.Errorf("expected tibs x1, got x%d", cart.Lines[1].Quantity)
	}
}

func TestAddItemUnavailableIsNoOp(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.AddItem(id, menuItem("doro-wat", 250, true))
	cart, _ := s.AddItem(id, menuItem("kitfo", 300, false))

	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line after adding unavailable item, got %d", len(cart.Lines))
	}
	total, _ := s.Total(id)
	if !total.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected total 250, got %s", total)
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		qty       int
		wantLines int
		wantQty   int
	}{
		{name: "absolute set", qty: 5, wantLines: 1, wantQty: 5},
		{name: "zero removes line", qty: 0, wantLines: 0},
		{name: "negative removes line", qty: -3, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCartStore()
			id := s.Create()
			s.AddItem(id, menuItem("doro-wat", 250, true))
			s.AddItem(id, menuItem("doro-wat", 250, true))

			cart, ok := s.UpdateQuantity(id, "doro-wat", tt.qty)
			if !ok {
				t.Fatal("expected cart to exist")
			}
			if len(cart.Lines) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d", tt.wantLines, len(cart.Lines))
			}
			if tt.wantLines > 0 && cart.Lines[0].Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, cart.Lines[0].Quantity)
			}
		})
	}
}

func TestUpdateQuantityUnknownItemIsNoOp(t *testing.T) {
	s := NewCartStore()
	id := s.Create()
	s.AddItem(id, menuItem("doro-wat", 250, true))

	cart, _ := s.UpdateQuantity(id, "nonexistent", 4)
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Errorf("expected cart unchanged, got %+v", cart.Lines)
	}
}

func TestTotalRecomputedAfterMutations(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.AddItem(id, menuItem("doro-wat", 250, true))
	s.AddItem(id, menuItem("tibs", 180, true))
	s.RemoveItem(id, "doro-wat")
	s.AddItem(id, menuItem("shiro", 120, true))

	total, ok := s.Total(id)
	if !ok {
		t.Fatal("expected cart to exist")
	}
	if !total.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total 300, got %s", total)
	}
}

func TestClearThenReAddReproducesSingleLine(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.AddItem(id, menuItem("doro-wat", 250, true))
	s.Clear(id)

	total, _ := s.Total(id)
	if !total.Equal(decimal.Zero) {
		t.Fatalf("expected empty total, got %s", total)
	}

	cart, _ := s.AddItem(id, menuItem("doro-wat", 250, true))
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Errorf("expected a fresh single line, got %+v", cart.Lines)
	}
}

func TestApplyDraftPatchDeliveryTransition(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	delivery := models.ServiceDelivery
	_, becameDelivery, ok := s.ApplyDraftPatch(id, models.DraftPatch{ServiceType: &delivery})
	if !ok || !becameDelivery {
		t.Fatalf("expected transition into delivery, got becameDelivery=%v ok=%v", becameDelivery, ok)
	}

	// Patching delivery again is not a transition.
	_, becameDelivery, _ = s.ApplyDraftPatch(id, models.DraftPatch{ServiceType: &delivery})
	if becameDelivery {
		t.Error("expected no transition when already in delivery")
	}
}

func TestSelectedLocationWinsOverDevice(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.SetDeviceLocation(id, models.LatLng{Lat: 9.0, Lng: 38.7})
	s.SelectDeliveryLocation(id, models.LatLng{Lat: 9.1, Lng: 38.8})

	cart, _ := s.Get(id)
	loc := cart.Draft.DeliveryLocation()
	if loc == nil || loc.Lat != 9.1 || loc.Lng != 38.8 {
		t.Errorf("expected explicit selection to win, got %+v", loc)
	}
}

func TestBeginSubmissionGuards(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	if _, err := s.BeginSubmission(id); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}

	s.AddItem(id, menuItem("doro-wat", 250, true))
	phone := "0911000000"
	takeaway := models.ServiceTakeaway
	table := 5
	s.ApplyDraftPatch(id, models.DraftPatch{ServiceType: &takeaway, PhoneNumber: &phone, TableNumber: &table})

	sub, err := s.BeginSubmission(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.OrderType != models.ServiceTakeaway || sub.PhoneNumber != "0911000000" {
		t.Errorf("unexpected submission payload: %+v", sub)
	}
	if sub.TableNumber != 0 {
		t.Errorf("table number should be dropped outside dine-in, got %d", sub.TableNumber)
	}
	if sub.Location != nil {
		t.Errorf("location should be absent outside delivery, got %+v", sub.Location)
	}

	if _, err := s.BeginSubmission(id); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("expected ErrSubmissionInFlight, got %v", err)
	}

	if _, err := s.BeginSubmission(uuid.New()); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("expected ErrCartNotFound, got %v", err)
	}
}

func TestEndSubmissionSuccessClearsCartAndDraft(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.AddItem(id, menuItem("doro-wat", 250, true))
	phone := "0911000000"
	takeaway := models.ServiceTakeaway
	s.ApplyDraftPatch(id, models.DraftPatch{ServiceType: &takeaway, PhoneNumber: &phone})

	if _, err := s.BeginSubmission(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.EndSubmission(id, true)

	cart, _ := s.Get(id)
	if len(cart.Lines) != 0 {
		t.Errorf("expected cleared cart, got %d lines", len(cart.Lines))
	}
	if cart.Draft.PhoneNumber != "" {
		t.Errorf("expected draft reset, got %+v", cart.Draft)
	}
	if cart.Status != models.StatusSubmitted {
		t.Errorf("expected status submitted, got %s", cart.Status)
	}

	// The flag is released: a new order can be started.
	s.AddItem(id, menuItem("doro-wat", 250, true))
	if _, err := s.BeginSubmission(id); err != nil {
		t.Errorf("expected fresh submission to start, got %v", err)
	}
}

func TestEndSubmissionFailureKeepsCart(t *testing.T) {
	s := NewCartStore()
	id := s.Create()

	s.AddItem(id, menuItem("doro-wat", 250, true))
	if _, err := s.BeginSubmission(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.EndSubmission(id, false)

	cart, _ := s.Get(id)
	if len(cart.Lines) != 1 {
		t.Errorf("expected cart kept after failure, got %d lines", len(cart.Lines))
	}
	if cart.Status != models.StatusFailed {
		t.Errorf("expected status failed, got %s", cart.Status)
	}

	// Resubmission is a fresh user action and must be possible.
	if _, err := s.BeginSubmission(id); err != nil {
		t.Errorf("expected resubmission to start, got %v", err)
	}
}
