package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/menu"
	"github.com/kiwari-pos/restaurant/internal/order"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newOrder() *order.Order {
	o := order.NewDineIn(1, "Maria Silva")
	o.AddItem(menu.NewItem("Picanha", "", dec("45.00")))
	return o
}

func TestKitchenAndWaiterLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("test", "debug", &buf)

	o := newOrder()
	o.Attach(NewKitchen("Cozinha Principal", log))
	o.Attach(NewWaiter("João", log))

	o.SetStatus(order.StatusPreparing)
	if strings.Contains(buf.String(), "waiter_serve") {
		t.Fatal("waiter should ignore PREPARING")
	}
	if !strings.Contains(buf.String(), "kitchen_preparing") {
		t.Fatalf("expected kitchen record, got %s", buf.String())
	}

	buf.Reset()
	o.SetStatus(order.StatusReady)
	out := buf.String()
	if !strings.Contains(out, "kitchen_ready") || !strings.Contains(out, "waiter_serve") {
		t.Fatalf("expected kitchen and waiter records, got %s", out)
	}
}

func TestPaymentSystemChargesTotal(t *testing.T) {
	p := NewPaymentSystem(nil, logger.Discard())
	o := newOrder()
	o.Attach(p)

	o.SetStatus(order.StatusPreparing)
	o.SetStatus(order.StatusDelivered)

	charges := p.Charges()
	if len(charges) != 1 {
		t.Fatalf("expected 1 charge, got %d", len(charges))
	}
	if charges[0].Refund || !charges[0].Amount.Equal(dec("45.00")) {
		t.Errorf("unexpected charge: %+v", charges[0])
	}
}

func TestPaymentSystemUsesPricer(t *testing.T) {
	svc := pricing.NewService(pricing.HappyHour{})
	p := NewPaymentSystem(svc, logger.Discard())
	o := newOrder()
	o.Attach(p)

	o.SetStatus(order.StatusDelivered)

	if got := p.Charges()[0].Amount; !got.Equal(dec("36.00")) {
		t.Errorf("expected discounted charge 36.00, got %s", got)
	}
}

func TestPaymentSystemRefund(t *testing.T) {
	p := NewPaymentSystem(nil, logger.Discard())
	o := newOrder()
	o.Attach(p)

	o.SetStatus(order.StatusCancelled)

	charges := p.Charges()
	if len(charges) != 1 || !charges[0].Refund {
		t.Fatalf("expected one refund, got %+v", charges)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	o := newOrder()
	o.Attach(r)

	o.SetStatus(order.StatusPreparing)
	o.SetStatus(order.StatusReady)

	got := r.Changes()
	if len(got) != 2 || got[0].Status != order.StatusPreparing || got[1].Status != order.StatusReady {
		t.Fatalf("unexpected changes: %+v", got)
	}
}
