// Package order holds the order aggregate: its items, fee policy, status
// and the listeners notified when the status changes.
//
// An Order is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
package order

import (
	"fmt"
	"reflect"
	"time"

	"github.com/kiwari-pos/restaurant/internal/menu"
	"github.com/shopspring/decimal"
)

// Listener receives status changes of the orders it is attached to.
// Implementations must be pointers: attach and detach work by identity.
type Listener interface {
	OnStatusChange(o *Order)
}

// Order is a customer's collection of menu items with a status and a fee
// policy chosen by its kind.
type Order struct {
	id              int
	customer        string
	kind            Kind
	deliveryAddress string
	createdAt       time.Time
	items           []menu.MenuItem
	subtotal        decimal.Decimal
	status          Status
	listeners       []Listener
}

// New creates a pending order of the given kind. address is kept only for
// delivery orders.
func New(kind Kind, id int, customer, address string) (*Order, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	o := &Order{
		id:        id,
		customer:  customer,
		kind:      kind,
		createdAt: time.Now(),
		subtotal:  decimal.Zero,
		status:    StatusPending,
	}
	if kind == KindDelivery {
		o.deliveryAddress = address
	}
	return o, nil
}

func NewDineIn(id int, customer string) *Order {
	o, _ := New(KindDineIn, id, customer, "")
	return o
}

func NewTakeaway(id int, customer string) *Order {
	o, _ := New(KindTakeaway, id, customer, "")
	return o
}

func NewDelivery(id int, customer, address string) *Order {
	o, _ := New(KindDelivery, id, customer, address)
	return o
}

func (o *Order) ID() int                 { return o.id }
func (o *Order) Customer() string        { return o.customer }
func (o *Order) Kind() Kind              { return o.kind }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) Status() Status          { return o.status }

// Subtotal is the sum of the prices of the items currently in the order.
func (o *Order) Subtotal() decimal.Decimal { return o.subtotal }

// Items returns a copy of the items in insertion order.
func (o *Order) Items() []menu.MenuItem {
	items := make([]menu.MenuItem, len(o.items))
	copy(items, o.items)
	return items
}

// AddItem appends item and adds its price to the subtotal.
// It panics if item is nil.
func (o *Order) AddItem(item menu.MenuItem) {
	if item == nil {
		panic("order: add nil item")
	}
	o.items = append(o.items, item)
	o.subtotal = o.subtotal.Add(item.Price())
}

// RemoveItem removes the first occurrence of item (by identity) and
// reports whether it was present. Removing an absent item changes nothing.
func (o *Order) RemoveItem(item menu.MenuItem) bool {
	for i, it := range o.items {
		if it == item {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.subtotal = o.subtotal.Sub(it.Price())
			return true
		}
	}
	return false
}

// RemoveAt removes the item at index and reports whether index was in
// range. Out-of-range indexes change nothing.
func (o *Order) RemoveAt(index int) bool {
	if index < 0 || index >= len(o.items) {
		return false
	}
	it := o.items[index]
	o.items = append(o.items[:index], o.items[index+1:]...)
	o.subtotal = o.subtotal.Sub(it.Price())
	return true
}

// Fee is the surcharge of the order's kind for the current subtotal.
func (o *Order) Fee() decimal.Decimal {
	return o.kind.fee(o.subtotal)
}

// Total is subtotal plus fee.
func (o *Order) Total() decimal.Decimal {
	return o.subtotal.Add(o.Fee())
}

// SetStatus overwrites the status without checking the transition and then
// notifies every attached listener, in attachment order, on the calling
// goroutine. Listeners see the order after the change. A panicking listener
// aborts the fan-out and the panic reaches the caller.
func (o *Order) SetStatus(s Status) {
	o.status = s
	o.notify()
}

// Attach registers l. Attaching a listener that is already registered is
// a no-op. It panics if l is nil or not a pointer.
func (o *Order) Attach(l Listener) {
	if l == nil {
		panic("order: attach nil listener")
	}
	if reflect.TypeOf(l).Kind() != reflect.Pointer {
		panic(fmt.Sprintf("order: listener of type %T must be a pointer", l))
	}
	for _, existing := range o.listeners {
		if existing == l {
			return
		}
	}
	o.listeners = append(o.listeners, l)
}

// Detach removes l. Detaching an unknown listener is a no-op.
func (o *Order) Detach(l Listener) {
	for i, existing := range o.listeners {
		if existing == l {
			o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the attached listeners in attachment order.
func (o *Order) Listeners() []Listener {
	ls := make([]Listener, len(o.listeners))
	copy(ls, o.listeners)
	return ls
}

// notify walks a snapshot, so a listener may detach itself (or others)
// from inside the callback; the change applies from the next status change.
func (o *Order) notify() {
	snapshot := o.Listeners()
	for _, l := range snapshot {
		l.OnStatusChange(o)
	}
}
