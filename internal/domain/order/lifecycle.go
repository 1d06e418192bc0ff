package order

import (
	"strings"
	"time"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition        = errs.Define("status transition not allowed from the current status", errs.ErrConflict)
	ErrCancellationWindowClosed = errs.Define("order can no longer be cancelled", errs.ErrConflict)
	ErrAlreadyRefunded          = errs.Define("order is already refunded", errs.ErrConflict)
	ErrNotAssigned              = errs.Define("order has no delivery person assigned", errs.ErrConflict)
	ErrNotCancelled             = errs.Define("only cancelled orders can be deleted", errs.ErrConflict)
	ErrUseDedicatedOperation    = errs.Define("use the assign, cancel or refund operation for this status", errs.ErrValidation)
	ErrInvalidCancelReason      = errs.Define("cancellation reason is required (max 500 characters)", errs.ErrValidation)
	ErrInvalidEta               = errs.Define("eta must be between 1 and 300 minutes", errs.ErrValidation)

	ErrForbiddenActor = errs.Define("role may not perform this transition", errs.ErrForbidden)
	ErrNotAssignee    = errs.Define("order is assigned to another delivery person", errs.ErrForbidden)
	ErrNotOwner       = errs.Define("order belongs to another customer", errs.ErrForbidden)
)

var courierStatuses = map[Status]bool{
	StatusPicked:         true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
}

// EnsureDeletable lets management purge cancelled orders. Every other status
// is kept for reporting and refunds.
func (o *Order) EnsureDeletable(actor Actor) error {
	if actor.Role != user.RoleManager && actor.Role != user.RoleSuperAdmin {
		return ErrForbiddenActor
	}
	if o.status != StatusCancelled {
		return ErrNotCancelled
	}
	return nil
}

// Advance moves the order forward along the main path.
//
// Staff-side roles drive CONFIRMED through OUT_FOR_DELIVERY and close a
// DELIVERED order as COMPLETE. The assigned courier drives PICKED,
// OUT_FOR_DELIVERY and DELIVERED. Statuses can be skipped but never revisited.
func (o *Order) Advance(actor Actor, target Status, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	switch target {
	case StatusPlaced:
		return ErrInvalidTransition
	case StatusAssigned, StatusCancelled, StatusRefunded:
		return ErrUseDedicatedOperation
	}

	if err := o.authorizeAdvance(actor, target); err != nil {
		return err
	}

	if target == StatusComplete {
		if o.status != StatusDelivered {
			return ErrInvalidTransition
		}
	} else if o.status.IsTerminal() || !o.status.Before(target) {
		return ErrInvalidTransition
	}

	if target.rank() >= StatusPicked.rank() && o.delivery.AssignedTo == nil {
		return ErrNotAssigned
	}

	o.record(target, actor.UserID, now)
	if target == StatusDelivered {
		at := now
		o.deliveredAt = &at
	}
	return nil
}

func (o *Order) authorizeAdvance(actor Actor, target Status) error {
	if actor.Role == user.RoleDelivery {
		if !courierStatuses[target] {
			return ErrForbiddenActor
		}
		if !o.IsAssignedTo(actor.UserID) {
			return ErrNotAssignee
		}
		return nil
	}
	if !actor.Role.IsStaffSide() {
		return ErrForbiddenActor
	}
	// DELIVERED is confirmed by the courier only.
	if target == StatusDelivered {
		return ErrForbiddenActor
	}
	return nil
}

// Assign hands the order to a courier. Reassigning while ASSIGNED is allowed
// and is recorded as a new ASSIGNED entry.
func (o *Order) Assign(actor Actor, courierID uuid.UUID, etaMinutes *int, now time.Time) error {
	if !actor.Role.IsStaffSide() {
		return ErrForbiddenActor
	}
	if o.status.rank() < 0 || !o.status.Before(StatusPicked) {
		return ErrInvalidTransition
	}
	if etaMinutes != nil && (*etaMinutes < 1 || *etaMinutes > 300) {
		return ErrInvalidEta
	}
	id := courierID
	o.delivery.AssignedTo = &id
	o.delivery.EtaMinutes = etaMinutes
	o.record(StatusAssigned, actor.UserID, now)
	return nil
}

// Cancel is open to the owning customer and super-admins, strictly before READY.
func (o *Order) Cancel(actor Actor, reason, comment string, now time.Time) error {
	switch actor.Role {
	case user.RoleSuperAdmin:
	case user.RoleCustomer:
		if !o.IsOwnedBy(actor.UserID) {
			return ErrNotOwner
		}
	default:
		return ErrForbiddenActor
	}
	if !o.status.IsCancellable() {
		return ErrCancellationWindowClosed
	}
	reason = strings.TrimSpace(reason)
	if reason == "" || len([]rune(reason)) > 500 {
		return ErrInvalidCancelReason
	}
	o.cancellation = &Cancellation{
		Reason:  reason,
		Comment: strings.TrimSpace(comment),
		By:      actor.UserID,
		At:      now,
	}
	o.record(StatusCancelled, actor.UserID, now)
	return nil
}

// Refund is reachable from any status, including terminal ones, except REFUNDED.
func (o *Order) Refund(actor Actor, now time.Time) error {
	if actor.Role != user.RoleSuperAdmin && actor.Role != user.RoleManager {
		return ErrForbiddenActor
	}
	if o.status == StatusRefunded {
		return ErrAlreadyRefunded
	}
	at := now
	o.refundedAt = &at
	o.payment.Status = PaymentRefunded
	o.record(StatusRefunded, actor.UserID, now)
	return nil
}

// UpdateLocation is not a transition and does not touch the timeline.
func (o *Order) UpdateLocation(actor Actor, point GeoPoint, now time.Time) error {
	if actor.Role != user.RoleDelivery {
		return ErrForbiddenActor
	}
	if !o.IsAssignedTo(actor.UserID) {
		return ErrNotAssignee
	}
	switch o.status {
	case StatusAssigned, StatusPicked, StatusOutForDelivery:
	default:
		return ErrInvalidTransition
	}
	if _, err := NewGeoPoint(point.Lat, point.Lng); err != nil {
		return err
	}
	at := now
	o.delivery.LiveLocation = &point
	o.delivery.LocationUpdatedAt = &at
	o.updatedAt = now
	return nil
}
