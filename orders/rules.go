package orders

import (
	"errors"
	"fmt"

	"agrimart/models"
)

// ChangeRequest is the set of order fields a PATCH may touch. Nil means
// the field is left alone; status and transportStatus are independent
// axes and may be changed in the same request.
type ChangeRequest struct {
	Status          *models.OrderStatus
	TransportStatus *models.TransportStatus
	TransporterID   *string
}

func (c ChangeRequest) Empty() bool {
	return c.Status == nil && c.TransportStatus == nil && c.TransporterID == nil
}

// Caller describes the requester's relationship to one order.
type Caller struct {
	UserID  string
	IsAdmin bool
}

// ErrForbidden marks authorization failures so handlers map them to 403
// instead of the 400 used for bad transitions.
var ErrForbidden = errors.New("forbidden")

func forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrForbidden}, args...)...)
}

var statusRank = map[models.OrderStatus]int{
	models.OrderPending:   0,
	models.OrderPaid:      1,
	models.OrderDelivered: 2,
}

var transportRank = map[models.TransportStatus]int{
	models.TransportPending:   0,
	models.TransportPicked:    1,
	models.TransportOnTransit: 2,
	models.TransportDelivered: 3,
}

// Validate rejects unknown enum values before anything is loaded.
func (c ChangeRequest) Validate() error {
	if c.Empty() {
		return errors.New("no fields to update")
	}
	if c.Status != nil && !models.ValidOrderStatus(*c.Status) {
		return fmt.Errorf("invalid order status %q", *c.Status)
	}
	if c.TransportStatus != nil && !models.ValidTransportStatus(*c.TransportStatus) {
		return fmt.Errorf("invalid transport status %q", *c.TransportStatus)
	}
	return nil
}

// Authorize applies the role × field matrix: buyers may move their own
// order between pending and paid, agents own the status and transporter
// assignment, the assigned transporter owns transport progress, admins
// may do anything. Errors wrap ErrForbidden.
func Authorize(o *models.Order, caller Caller, req ChangeRequest) error {
	if caller.IsAdmin {
		return nil
	}

	isBuyer := o.BuyerID == caller.UserID
	isAgent := o.HasAgent(caller.UserID)
	isTransporter := o.TransporterID != "" && o.TransporterID == caller.UserID

	if !isBuyer && !isAgent && !isTransporter {
		return forbiddenf("no relationship to this order")
	}

	if req.Status != nil {
		switch {
		case isAgent:
			// any valid value
		case isBuyer:
			if *req.Status == models.OrderDelivered {
				return forbiddenf("buyers cannot mark an order delivered")
			}
		default:
			return forbiddenf("transporters cannot change the order status")
		}
	}

	if req.TransportStatus != nil && !isTransporter {
		return forbiddenf("only the assigned transporter may update transport progress")
	}

	if req.TransporterID != nil && !isAgent {
		if isBuyer {
			return forbiddenf("buyers cannot change transport assignments")
		}
		return forbiddenf("transporters cannot reassign orders")
	}

	return nil
}

// CheckTransition enforces forward-only movement on both axes. Admins
// may override backward; nobody else may.
func CheckTransition(o *models.Order, caller Caller, req ChangeRequest) error {
	if req.Status != nil && !caller.IsAdmin {
		if statusRank[*req.Status] < statusRank[o.Status] {
			return fmt.Errorf("order status cannot move back from %s to %s", o.Status, *req.Status)
		}
	}
	if req.TransportStatus != nil && !caller.IsAdmin {
		if transportRank[*req.TransportStatus] < transportRank[o.TransportStatus] {
			return fmt.Errorf("transport status cannot move back from %s to %s", o.TransportStatus, *req.TransportStatus)
		}
	}
	return nil
}

// Apply mutates the order in memory and reports which axes changed.
func Apply(o *models.Order, req ChangeRequest) (statusChanged, transportChanged bool) {
	if req.Status != nil && *req.Status != o.Status {
		o.Status = *req.Status
		statusChanged = true
	}
	if req.TransportStatus != nil && *req.TransportStatus != o.TransportStatus {
		o.TransportStatus = *req.TransportStatus
		transportChanged = true
	}
	if req.TransporterID != nil {
		o.TransporterID = *req.TransporterID
	}
	return statusChanged, transportChanged
}
