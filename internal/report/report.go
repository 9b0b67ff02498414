// Package report renders human-readable order and restaurant summaries.
package report

import (
	"fmt"
	"io"

	"github.com/kiwari-pos/restaurant/internal/config"
	"github.com/kiwari-pos/restaurant/internal/order"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04:05"

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// WriteOrder writes the order sheet: header, items, subtotal, fee and total.
func WriteOrder(w io.Writer, o *order.Order) error {
	ew := &errWriter{w: w}

	ew.printf("=== Pedido #%d ===\n", o.ID())
	if o.Kind() == order.KindDelivery {
		ew.printf("Endereço: %s\n", o.DeliveryAddress())
	}
	ew.printf("Tipo: %s\n", o.Kind().Label())
	ew.printf("Cliente: %s\n", o.Customer())
	ew.printf("Status: %s\n", o.Status().Label())
	ew.printf("Horário: %s\n", o.CreatedAt().Format(timeLayout))
	ew.printf("\nItens:\n")
	for _, it := range o.Items() {
		ew.printf("  - %s (%s)\n", it.Name(), money(it.Price()))
	}
	ew.printf("\nSubtotal: %s\n", money(o.Subtotal()))
	if fee := o.Fee(); fee.IsPositive() {
		ew.printf("Taxa de entrega: %s\n", money(fee))
	}
	ew.printf("Total: %s\n", money(o.Total()))
	return ew.err
}

// WriteSummary writes the order sheet followed, when the strategy changes
// the price, by the strategy name, the discount and the final price.
func WriteSummary(w io.Writer, o *order.Order, st pricing.Strategy) error {
	if err := WriteOrder(w, o); err != nil {
		return err
	}
	ew := &errWriter{w: w}
	q := pricing.QuoteWith(st, o)
	if !q.Final.Equal(q.Total) {
		ew.printf("Estratégia de Preço: %s\n", q.Strategy)
		ew.printf("Desconto aplicado: %s\n", money(q.Discount))
		ew.printf("PREÇO FINAL: %s\n", money(q.Final))
	}
	ew.printf("=====================================\n\n")
	return ew.err
}

// WriteRestaurant writes the restaurant metadata.
func WriteRestaurant(w io.Writer, r *config.Restaurant) error {
	info := r.Info()
	status := "FECHADO"
	if info.Open {
		status = "ABERTO"
	}
	ew := &errWriter{w: w}
	ew.printf("\n=== Configurações do Restaurante ===\n")
	ew.printf("Nome: %s\n", info.Name)
	ew.printf("Endereço: %s\n", info.Address)
	ew.printf("Telefone: %s\n", info.Phone)
	ew.printf("Status: %s\n", status)
	ew.printf("Próximo ID de Pedido: %d\n", r.PeekOrderID())
	return ew.err
}

// errWriter keeps the first write error and skips the remaining writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
