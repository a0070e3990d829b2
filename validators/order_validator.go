package validators

import (
	"fmt"

	"github.com/Mubarek26/MenuVerse/models"
)

// ValidateDraft checks the order metadata against the active service
// type. An empty slice means checkout may proceed; otherwise the
// problems describe what still blocks it. The gate is re-evaluated on
// every draft read, never raised as an error.
func ValidateDraft(d models.OrderDraft) []string {
	var problems []string

	switch d.ServiceType {
	case models.ServiceDineIn:
		if d.TableNumber < 1 || d.TableNumber > models.MaxTableNumber {
			problems = append(problems, fmt.Sprintf("table number must be between 1 and %d for dine-in orders", models.MaxTableNumber))
		}
	case models.ServiceTakeaway:
		// Table number is ignored outside dine-in, set or not.
	case models.ServiceDelivery:
		if d.DeviceLocation == nil {
			problems = append(problems, "device location is not available")
		}
		if d.SelectedLocation == nil {
			problems = append(problems, "a delivery point must be confirmed on the map")
		}
	default:
		problems = append(problems, "service type must be Dine-In, Takeaway or Delivery")
	}

	// TODO: validate the +251 number format; only non-emptiness is checked for now.
	if d.PhoneNumber == "" {
		problems = append(problems, "phone number is required")
	}

	return problems
}
