// Package notify provides the order listeners staffed by the restaurant:
// the kitchen, the waiters and the payment system.
package notify

import (
	"log/slog"
	"sync"

	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/order"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/shopspring/decimal"
)

// Pricer prices an order for payment. Satisfied by *pricing.Service.
type Pricer interface {
	FinalPrice(o pricing.Totaler) decimal.Decimal
}

func orderAttrs(o *order.Order) []slog.Attr {
	return []slog.Attr{
		slog.Int("order_id", o.ID()),
		slog.String("status", string(o.Status())),
		slog.String("customer", o.Customer()),
	}
}

// Kitchen reacts to orders it has to prepare.
type Kitchen struct {
	Name string
	log  *logger.Logger
}

func NewKitchen(name string, log *logger.Logger) *Kitchen {
	return &Kitchen{Name: name, log: log}
}

func (k *Kitchen) OnStatusChange(o *order.Order) {
	attrs := append(orderAttrs(o), slog.String("kitchen", k.Name))
	switch o.Status() {
	case order.StatusPending:
		k.log.Info("kitchen_new_order", "new order to prepare", attrs...)
	case order.StatusPreparing:
		k.log.Info("kitchen_preparing", "order being prepared", attrs...)
	case order.StatusReady:
		k.log.Info("kitchen_ready", "order ready for pickup", attrs...)
	default:
		k.log.Debug("kitchen_status", "order status changed", attrs...)
	}
}

// Waiter only cares about orders that are ready to be served.
type Waiter struct {
	Name string
	log  *logger.Logger
}

func NewWaiter(name string, log *logger.Logger) *Waiter {
	return &Waiter{Name: name, log: log}
}

func (w *Waiter) OnStatusChange(o *order.Order) {
	if o.Status() != order.StatusReady {
		return
	}
	attrs := append(orderAttrs(o), slog.String("waiter", w.Name))
	w.log.Info("waiter_serve", "order ready to serve", attrs...)
}

// Charge is a payment movement emitted by PaymentSystem.
type Charge struct {
	OrderID int
	Amount  decimal.Decimal
	Refund  bool
}

// PaymentSystem charges delivered orders and refunds cancelled ones.
// When a Pricer is set the charged amount is its final price, otherwise
// the order total.
type PaymentSystem struct {
	pricer Pricer
	log    *logger.Logger

	mu      sync.Mutex
	charges []Charge
}

func NewPaymentSystem(pricer Pricer, log *logger.Logger) *PaymentSystem {
	return &PaymentSystem{pricer: pricer, log: log}
}

func (p *PaymentSystem) OnStatusChange(o *order.Order) {
	switch o.Status() {
	case order.StatusDelivered:
		amount := o.Total()
		if p.pricer != nil {
			amount = p.pricer.FinalPrice(o)
		}
		p.record(Charge{OrderID: o.ID(), Amount: amount})
		attrs := append(orderAttrs(o), slog.String("amount", amount.StringFixed(2)))
		p.log.Info("payment_charge", "processing payment", attrs...)
	case order.StatusCancelled:
		p.record(Charge{OrderID: o.ID(), Refund: true})
		p.log.Info("payment_refund", "refunding payment if needed", orderAttrs(o)...)
	}
}

func (p *PaymentSystem) record(c Charge) {
	p.mu.Lock()
	p.charges = append(p.charges, c)
	p.mu.Unlock()
}

// Charges returns the movements recorded so far.
func (p *PaymentSystem) Charges() []Charge {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Charge, len(p.charges))
	copy(out, p.charges)
	return out
}

// Change is one notification seen by a Recorder.
type Change struct {
	OrderID int
	Status  order.Status
}

// Recorder keeps every status change it is notified of.
type Recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *Recorder) OnStatusChange(o *order.Order) {
	r.mu.Lock()
	r.changes = append(r.changes, Change{OrderID: o.ID(), Status: o.Status()})
	r.mu.Unlock()
}

func (r *Recorder) Changes() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Change, len(r.changes))
	copy(out, r.changes)
	return out
}
