package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/kiwari-pos/restaurant/internal/menu"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(name, price string) *menu.Item {
	return menu.NewItem(name, name, dec(price))
}

// recordingListener appends what it saw to a shared log.
type recordingListener struct {
	name string
	log  *[]string
	seen []Status
}

func (r *recordingListener) OnStatusChange(o *Order) {
	*r.log = append(*r.log, r.name)
	r.seen = append(r.seen, o.Status())
}

// funcListener is not comparable.
type funcListener struct {
	fn func(*Order)
}

func (f funcListener) OnStatusChange(o *Order) { f.fn(o) }

func sumPrices(items []menu.MenuItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price())
	}
	return sum
}

func TestNewOrderDefaults(t *testing.T) {
	o := NewDineIn(7, "Maria Silva")

	if o.ID() != 7 || o.Customer() != "Maria Silva" {
		t.Fatalf("unexpected identity: %d %q", o.ID(), o.Customer())
	}
	if o.Status() != StatusPending {
		t.Errorf("expected PENDING, got %s", o.Status())
	}
	if !o.Subtotal().IsZero() {
		t.Errorf("expected zero subtotal, got %s", o.Subtotal())
	}
	if o.CreatedAt().IsZero() {
		t.Error("expected creation time to be set")
	}
}

func TestNewInvalidKind(t *testing.T) {
	_, err := New(Kind("CATERING"), 1, "x", "")
	if !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestAddRemoveKeepsSubtotal(t *testing.T) {
	o := NewTakeaway(1, "Ana")
	a := item("a", "10.00")
	b := item("b", "4.50")
	c := item("c", "7.25")
	absent := item("absent", "99.00")

	steps := []struct {
		add    menu.MenuItem
		remove menu.MenuItem
	}{
		{add: a},
		{add: b},
		{add: c},
		{remove: b},
		{remove: absent},
		{add: b},
		{remove: a},
		{remove: a},
	}

	for i, s := range steps {
		if s.add != nil {
			o.AddItem(s.add)
		}
		if s.remove != nil {
			o.RemoveItem(s.remove)
		}
		if want := sumPrices(o.Items()); !o.Subtotal().Equal(want) {
			t.Fatalf("step %d: subtotal %s != sum of items %s", i, o.Subtotal(), want)
		}
	}

	if got := len(o.Items()); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	o := NewDineIn(1, "x")
	o.AddItem(item("a", "10.00"))

	if o.RemoveItem(item("a", "10.00")) {
		t.Fatal("expected removal of a different instance to report false")
	}
	if !o.Subtotal().Equal(dec("10.00")) {
		t.Errorf("subtotal changed: %s", o.Subtotal())
	}
}

func TestRemoveFirstMatchOnly(t *testing.T) {
	o := NewDineIn(1, "x")
	a := item("a", "3.00")
	o.AddItem(a)
	o.AddItem(item("b", "1.00"))
	o.AddItem(a)

	o.RemoveItem(a)

	items := o.Items()
	if len(items) != 2 || items[0].Name() != "b" || items[1] != menu.MenuItem(a) {
		t.Fatalf("unexpected items after removal: %v", items)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	o := NewDineIn(1, "x")
	o.AddItem(item("a", "1.00"))

	items := o.Items()
	items[0] = item("z", "100.00")

	if o.Items()[0].Name() != "a" {
		t.Fatal("mutating the returned slice changed the order")
	}
}

func TestAddNilItemPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewDineIn(1, "x").AddItem(nil)
}

func TestFeeByKind(t *testing.T) {
	tests := []struct {
		name     string
		order    *Order
		subtotal string
		wantFee  string
	}{
		{"dine-in small", NewDineIn(1, "x"), "10.00", "0"},
		{"dine-in large", NewDineIn(1, "x"), "500.00", "0"},
		{"takeaway small", NewTakeaway(1, "x"), "1.00", "2.00"},
		{"takeaway large", NewTakeaway(1, "x"), "90.00", "2.00"},
		{"delivery below threshold", NewDelivery(1, "x", "Rua"), "40.00", "5.00"},
		{"delivery at threshold", NewDelivery(1, "x", "Rua"), "50.00", "0"},
		{"delivery above threshold", NewDelivery(1, "x", "Rua"), "55.00", "0"},
		{"delivery just below", NewDelivery(1, "x", "Rua"), "49.99", "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.order.AddItem(item("i", tt.subtotal))
			if !tt.order.Fee().Equal(dec(tt.wantFee)) {
				t.Errorf("expected fee %s, got %s", tt.wantFee, tt.order.Fee())
			}
			want := dec(tt.subtotal).Add(dec(tt.wantFee))
			if !tt.order.Total().Equal(want) {
				t.Errorf("expected total %s, got %s", want, tt.order.Total())
			}
		})
	}
}

func TestDeliveryScenarios(t *testing.T) {
	o := NewDelivery(2, "João Santos", "Rua das Flores, 456")
	o.AddItem(item("pizza", "40.50"))
	o.AddItem(item("soda", "5.00"))
	o.AddItem(item("dessert", "9.50"))

	if !o.Fee().IsZero() || !o.Total().Equal(dec("55.00")) {
		t.Errorf("subtotal 55: expected fee 0 total 55.00, got %s %s", o.Fee(), o.Total())
	}

	small := NewDelivery(3, "x", "Rua")
	small.AddItem(item("i", "40.00"))
	if !small.Fee().Equal(dec("5.00")) || !small.Total().Equal(dec("45.00")) {
		t.Errorf("subtotal 40: expected fee 5.00 total 45.00, got %s %s", small.Fee(), small.Total())
	}
	if small.DeliveryAddress() != "Rua" {
		t.Errorf("unexpected address %q", small.DeliveryAddress())
	}
}

func TestSetStatusNotifiesInOrder(t *testing.T) {
	var log []string
	kitchen := &recordingListener{name: "kitchen", log: &log}
	waiter := &recordingListener{name: "waiter", log: &log}
	payment := &recordingListener{name: "payment", log: &log}

	o := NewDineIn(1, "x")
	o.Attach(kitchen)
	o.Attach(waiter)
	o.Attach(payment)

	o.SetStatus(StatusPreparing)

	want := []string{"kitchen", "waiter", "payment"}
	if len(log) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(log))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("notification %d: expected %s, got %s", i, want[i], log[i])
		}
	}
	if kitchen.seen[0] != StatusPreparing {
		t.Errorf("listener saw %s, expected post-change status", kitchen.seen[0])
	}
}

func TestAttachIsIdempotent(t *testing.T) {
	var log []string
	l := &recordingListener{name: "l", log: &log}

	o := NewDineIn(1, "x")
	o.Attach(l)
	o.Attach(l)
	o.SetStatus(StatusReady)

	if len(log) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(log))
	}
}

func TestDetach(t *testing.T) {
	var log []string
	a := &recordingListener{name: "a", log: &log}
	b := &recordingListener{name: "b", log: &log}

	o := NewDineIn(1, "x")
	o.Attach(a)
	o.Attach(b)
	o.Detach(a)
	o.Detach(&recordingListener{name: "stranger", log: &log})

	o.SetStatus(StatusReady)

	if len(log) != 1 || log[0] != "b" {
		t.Fatalf("expected only b notified, got %v", log)
	}
}

// selfDetacher removes itself on the first notification.
type selfDetacher struct {
	calls int
}

func (s *selfDetacher) OnStatusChange(o *Order) {
	s.calls++
	o.Detach(s)
}

func TestDetachDuringNotification(t *testing.T) {
	var log []string
	d := &selfDetacher{}
	after := &recordingListener{name: "after", log: &log}

	o := NewDineIn(1, "x")
	o.Attach(d)
	o.Attach(after)

	o.SetStatus(StatusPreparing)
	o.SetStatus(StatusReady)

	if d.calls != 1 {
		t.Errorf("expected self-detaching listener called once, got %d", d.calls)
	}
	if len(log) != 2 {
		t.Errorf("expected the next listener to still be notified twice, got %d", len(log))
	}
}

func TestPermissiveTransitions(t *testing.T) {
	o := NewDineIn(1, "x")
	o.SetStatus(StatusDelivered)
	o.SetStatus(StatusPending)
	o.SetStatus(StatusCancelled)
	o.SetStatus(StatusReady)

	if o.Status() != StatusReady {
		t.Fatalf("expected READY, got %s", o.Status())
	}
}

func TestAttachUncomparablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for uncomparable listener")
		}
	}()
	NewDineIn(1, "x").Attach(funcListener{fn: func(*Order) {}})
}

// boxedListener is a comparable value type whose dynamic field may not be.
type boxedListener struct {
	v any
}

func (boxedListener) OnStatusChange(*Order) {}

func TestAttachValueListenerPanics(t *testing.T) {
	o := NewDineIn(1, "x")
	o.Attach(&recordingListener{name: "a", log: new([]string)})

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "order: listener of type") {
			t.Fatalf("expected attach panic message, got %v", r)
		}
		if len(o.Listeners()) != 1 {
			t.Errorf("rejected listener must not be attached")
		}
	}()
	o.Attach(boxedListener{v: []int{1}})
}

func TestRemoveAt(t *testing.T) {
	o := NewDineIn(1, "x")
	soda := item("soda", "5.00")
	o.AddItem(soda)
	o.AddItem(item("fries", "12.00"))
	o.AddItem(soda)

	if !o.RemoveAt(2) {
		t.Fatal("expected index 2 to be removed")
	}
	items := o.Items()
	if len(items) != 2 || items[0].Name() != "soda" || items[1].Name() != "fries" {
		t.Fatalf("unexpected items after removal: %v", items)
	}
	if !o.Subtotal().Equal(dec("17.00")) {
		t.Errorf("expected subtotal 17.00, got %s", o.Subtotal())
	}

	for _, idx := range []int{-1, 2, 10} {
		if o.RemoveAt(idx) {
			t.Errorf("index %d should be out of range", idx)
		}
	}
	if !o.Subtotal().Equal(dec("17.00")) {
		t.Errorf("out-of-range removal changed subtotal: %s", o.Subtotal())
	}
}

func TestListenerPanicPropagates(t *testing.T) {
	o := NewDineIn(1, "x")
	o.Attach(&panicking{})

	defer func() {
		if recover() == nil {
			t.Fatal("expected listener panic to reach SetStatus caller")
		}
		if o.Status() != StatusCancelled {
			t.Errorf("status should already be updated, got %s", o.Status())
		}
	}()
	o.SetStatus(StatusCancelled)
}

type panicking struct{}

func (*panicking) OnStatusChange(*Order) { panic("boom") }

func TestParse(t *testing.T) {
	if k, err := ParseKind("delivery"); err != nil || k != KindDelivery {
		t.Errorf("ParseKind: %v %v", k, err)
	}
	if _, err := ParseKind("drive_thru"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
	if s, err := ParseStatus(" ready "); err != nil || s != StatusReady {
		t.Errorf("ParseStatus: %v %v", s, err)
	}
	if _, err := ParseStatus("LOST"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestLabels(t *testing.T) {
	if KindTakeaway.Label() != "Para Viagem" {
		t.Errorf("unexpected kind label %q", KindTakeaway.Label())
	}
	if StatusPreparing.Label() != "Em Preparação" {
		t.Errorf("unexpected status label %q", StatusPreparing.Label())
	}
}

func TestFactory(t *testing.T) {
	o, err := DeliveryFactory("Rua das Flores, 456").Create(9, "João")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Kind() != KindDelivery || o.DeliveryAddress() != "Rua das Flores, 456" || o.ID() != 9 {
		t.Errorf("unexpected order: %s %q %d", o.Kind(), o.DeliveryAddress(), o.ID())
	}

	dine, _ := DineInFactory().Create(1, "x")
	if dine.Kind() != KindDineIn || dine.DeliveryAddress() != "" {
		t.Errorf("unexpected dine-in order: %s %q", dine.Kind(), dine.DeliveryAddress())
	}
	take, _ := TakeawayFactory().Create(1, "x")
	if take.Kind() != KindTakeaway {
		t.Errorf("unexpected kind %s", take.Kind())
	}
}
