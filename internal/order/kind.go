package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects the fee policy of an order.
type Kind string

const (
	KindDineIn   Kind = "DINE_IN"
	KindTakeaway Kind = "TAKEAWAY"
	KindDelivery Kind = "DELIVERY"
)

// Status is the lifecycle label of an order. Any status may follow any other.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Fee policy constants.
var (
	TakeawayPackagingFee  = decimal.RequireFromString("2.00")
	DeliveryFee           = decimal.RequireFromString("5.00")
	FreeDeliveryThreshold = decimal.RequireFromString("50.00")
)

var (
	ErrInvalidKind   = errors.New("invalid order kind")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Label returns the customer-facing name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindDineIn:
		return "Presencial"
	case KindTakeaway:
		return "Para Viagem"
	case KindDelivery:
		return "Delivery"
	}
	return string(k)
}

func (k Kind) valid() bool {
	switch k {
	case KindDineIn, KindTakeaway, KindDelivery:
		return true
	}
	return false
}

// fee computes the surcharge for kind given the current subtotal.
// The delivery threshold looks at the subtotal only.
func (k Kind) fee(subtotal decimal.Decimal) decimal.Decimal {
	switch k {
	case KindTakeaway:
		return TakeawayPackagingFee
	case KindDelivery:
		if subtotal.GreaterThanOrEqual(FreeDeliveryThreshold) {
			return decimal.Zero
		}
		return DeliveryFee
	}
	return decimal.Zero
}

// ParseKind accepts the wire code case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

// Label returns the customer-facing name of the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusPreparing:
		return "Em Preparação"
	case StatusReady:
		return "Pronto"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// ParseStatus accepts the wire code case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}
