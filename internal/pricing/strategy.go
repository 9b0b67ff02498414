// Package pricing turns an order total into the price the customer pays.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Totaler is the part of an order a strategy needs.
// Satisfied by *order.Order.
type Totaler interface {
	Total() decimal.Decimal
}

// Strategy computes the final price of an order. Strategies hold no
// reference to any order.
type Strategy interface {
	FinalPrice(o Totaler) decimal.Decimal
	Name() string
}

var (
	HappyHourDiscount    = decimal.RequireFromString("0.20")
	LoyaltyStepPercent   = decimal.NewFromInt(5)
	LoyaltyMaxPercent    = decimal.NewFromInt(30)
	LoyaltyPointsPerStep = 100
)

var hundred = decimal.NewFromInt(100)

// Regular charges the total unchanged.
type Regular struct{}

func (Regular) FinalPrice(o Totaler) decimal.Decimal { return o.Total() }
func (Regular) Name() string                         { return "Preço Regular" }

// HappyHour takes 20% off.
type HappyHour struct{}

func (HappyHour) FinalPrice(o Totaler) decimal.Decimal {
	return o.Total().Mul(decimal.NewFromInt(1).Sub(HappyHourDiscount))
}

func (HappyHour) Name() string { return "Happy Hour (20% OFF)" }

// Coupon subtracts a fixed amount, never going below zero.
type Coupon struct {
	Code   string
	Amount decimal.Decimal
}

func NewCoupon(code string, amount decimal.Decimal) Coupon {
	return Coupon{Code: code, Amount: amount}
}

func (c Coupon) FinalPrice(o Totaler) decimal.Decimal {
	final := o.Total().Sub(c.Amount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

func (c Coupon) Name() string {
	return fmt.Sprintf("Cupom %s (R$ %s OFF)", c.Code, c.Amount.StringFixed(2))
}

// Loyalty gives 5% per full 100 points, capped at 30%.
type Loyalty struct {
	Points int
}

func NewLoyalty(points int) Loyalty { return Loyalty{Points: points} }

// DiscountPercent is the whole-number percentage granted by the points.
func (l Loyalty) DiscountPercent() decimal.Decimal {
	steps := l.Points / LoyaltyPointsPerStep
	if steps < 0 {
		steps = 0
	}
	pct := LoyaltyStepPercent.Mul(decimal.NewFromInt(int64(steps)))
	if pct.GreaterThan(LoyaltyMaxPercent) {
		return LoyaltyMaxPercent
	}
	return pct
}

func (l Loyalty) FinalPrice(o Totaler) decimal.Decimal {
	rate := l.DiscountPercent().Div(hundred)
	return o.Total().Mul(decimal.NewFromInt(1).Sub(rate))
}

func (l Loyalty) Name() string {
	return fmt.Sprintf("Programa Fidelidade (%d pontos - %s%% OFF)", l.Points, l.DiscountPercent().String())
}
