// Command demo walks through the order lifecycle without the HTTP layer:
// three orders with extras and status changes, then the pricing
// strategies applied to one order. Reports go to stdout and listener
// logs to stderr.
package main

import (
	"fmt"
	"os"

	"github.com/kiwari-pos/restaurant/internal/config"
	"github.com/kiwari-pos/restaurant/internal/logger"
	"github.com/kiwari-pos/restaurant/internal/menu"
	"github.com/kiwari-pos/restaurant/internal/notify"
	"github.com/kiwari-pos/restaurant/internal/order"
	"github.com/kiwari-pos/restaurant/internal/pricing"
	"github.com/kiwari-pos/restaurant/internal/report"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter("restaurant-demo", cfg.LogLevel, os.Stderr)
	restaurant := config.NewRestaurant(cfg.Restaurant)

	if err := run(restaurant, log); err != nil {
		log.Error("demo", "demo failed", err)
		os.Exit(1)
	}
}

func run(restaurant *config.Restaurant, log *logger.Logger) error {
	out := os.Stdout
	if err := report.WriteRestaurant(out, restaurant); err != nil {
		return err
	}

	kitchen := notify.NewKitchen("Cozinha Principal", log)
	waiter := notify.NewWaiter("João", log)
	payments := notify.NewPaymentSystem(nil, log)

	// Dine-in with stacked extras.
	fmt.Fprintln(out, "\n--- PEDIDO PRESENCIAL ---")
	o1, err := order.DineInFactory().Create(restaurant.NextOrderID(), "Maria Silva")
	if err != nil {
		return err
	}
	o1.Attach(kitchen)
	o1.Attach(waiter)
	o1.Attach(payments)

	burger := menu.NewItem("Hambúrguer Artesanal", "Pão, carne, alface, tomate", decimal.RequireFromString("25.00"))
	fries := menu.NewItem("Batata Frita", "Batatas crocantes", decimal.RequireFromString("12.00"))
	o1.AddItem(menu.WithBacon(menu.WithExtraCheese(burger)))
	o1.AddItem(menu.WithExtraPortion(fries))
	if err := report.WriteOrder(out, o1); err != nil {
		return err
	}
	advance(o1, order.StatusPreparing, order.StatusReady, order.StatusDelivered)

	// Delivery.
	fmt.Fprintln(out, "\n--- PEDIDO DELIVERY ---")
	o2, err := order.DeliveryFactory("Rua das Flores, 456").Create(restaurant.NextOrderID(), "João Santos")
	if err != nil {
		return err
	}
	o2.Attach(kitchen)
	o2.Attach(waiter)
	o2.Attach(payments)

	pizza := menu.NewItem("Pizza Margherita", "Molho, queijo, manjericão", decimal.RequireFromString("35.00"))
	soda := menu.NewItem("Refrigerante", "Lata 350ml", decimal.RequireFromString("5.00"))
	o2.AddItem(menu.WithSpecialSauce(menu.WithExtraCheese(pizza), "Barbecue"))
	o2.AddItem(soda)
	if err := report.WriteOrder(out, o2); err != nil {
		return err
	}
	advance(o2, order.StatusPreparing, order.StatusReady, order.StatusDelivered)

	// Takeaway followed by the kitchen only.
	fmt.Fprintln(out, "\n--- PEDIDO PARA VIAGEM ---")
	o3, err := order.TakeawayFactory().Create(restaurant.NextOrderID(), "Ana Costa")
	if err != nil {
		return err
	}
	o3.Attach(kitchen)
	o3.AddItem(menu.NewItem("Macarrão à Carbonara", "Massa, bacon, queijo, ovos", decimal.RequireFromString("28.00")))
	if err := report.WriteOrder(out, o3); err != nil {
		return err
	}
	advance(o3, order.StatusPreparing, order.StatusReady)

	for _, c := range payments.Charges() {
		fmt.Fprintf(out, "Pagamento pedido #%d: R$ %s\n", c.OrderID, c.Amount.StringFixed(2))
	}

	return strategies(restaurant)
}

func advance(o *order.Order, statuses ...order.Status) {
	for _, s := range statuses {
		o.SetStatus(s)
	}
}

func strategies(restaurant *config.Restaurant) error {
	out := os.Stdout
	fmt.Fprintln(out, "\n=== ESTRATÉGIAS DE PREÇO ===")

	o := order.NewDineIn(restaurant.NextOrderID(), "Carlos Oliveira")
	o.AddItem(menu.NewItem("Picanha Grelhada", "300g de picanha com acompanhamentos", decimal.RequireFromString("45.00")))
	o.AddItem(menu.NewItem("Suco Natural", "Laranja 500ml", decimal.RequireFromString("8.00")))

	for _, st := range []pricing.Strategy{
		pricing.Regular{},
		pricing.HappyHour{},
		pricing.NewCoupon("BEMVINDO", decimal.RequireFromString("10.00")),
		pricing.NewLoyalty(250),
	} {
		if err := report.WriteSummary(out, o, st); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\n--- TROCA DE ESTRATÉGIA EM TEMPO DE EXECUÇÃO ---")
	svc := pricing.NewService(nil)
	fmt.Fprintf(out, "Estratégia inicial: %s\nPreço: R$ %s\n", svc.Strategy().Name(), svc.FinalPrice(o).StringFixed(2))
	svc.SetStrategy(pricing.HappyHour{})
	fmt.Fprintf(out, "\nEstratégia alterada para: %s\nNovo preço: R$ %s\n", svc.Strategy().Name(), svc.FinalPrice(o).StringFixed(2))
	return nil
}
