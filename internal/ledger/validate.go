package ledger

import (
	"fmt"
	"strings"
	"time"

	"yoyo-delivery/internal/apperr"
	"yoyo-delivery/internal/domain"
)

func validateNewOrder(in domain.NewOrder) error {
	required := []struct {
		name  string
		value string
	}{
		{"pickupAddress", in.PickupAddress},
		{"dropoffAddress", in.DropoffAddress},
		{"pickupContactName", in.PickupContactName},
		{"pickupContactPhone", in.PickupContactPhone},
		{"dropoffContactName", in.DropoffContactName},
		{"dropoffContactPhone", in.DropoffContactPhone},
		{"deliveryDate", in.DeliveryDate},
		{"deliveryTimeSlot", in.DeliveryTimeSlot},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", apperr.ErrInvalid, f.name)
		}
	}
	if in.Bags < 1 {
		return fmt.Errorf("%w: bags must be at least 1", apperr.ErrInvalid)
	}
	if _, err := time.Parse(domain.DateLayout, in.DeliveryDate); err != nil {
		return fmt.Errorf("%w: deliveryDate must be YYYY-MM-DD", apperr.ErrInvalid)
	}
	if !domain.ValidTimeSlot(in.DeliveryTimeSlot) {
		return fmt.Errorf("%w: unknown time slot %q", apperr.ErrInvalid, in.DeliveryTimeSlot)
	}
	return nil
}
