package sale

import "github.com/libreria/sales-service/internal/model"

// ResolveTransition decides what a requested status change means given the
// status actually persisted. Saving the same status twice is a no-op, which
// is what makes the confirm deduction run exactly once; CONFIRMED and
// CANCELLED accept no further transitions.
func ResolveTransition(prev, next model.SaleStatus) (deduct, noop bool, err error) {
	if prev == next {
		return false, true, nil
	}
	if prev != model.SaleStatusPending {
		return false, false, model.ErrInvalidStatusTransition
	}
	switch next {
	case model.SaleStatusConfirmed:
		return true, false, nil
	case model.SaleStatusCancelled:
		return false, false, nil
	default:
		return false, false, model.ErrInvalidStatusTransition
	}
}
