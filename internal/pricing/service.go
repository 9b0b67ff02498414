package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Strategy codes understood by Parse.
const (
	CodeRegular   = "regular"
	CodeHappyHour = "happy_hour"
	CodeCoupon    = "coupon"
	CodeLoyalty   = "loyalty"
)

// MaxCouponAmount bounds coupon amounts accepted by Parse.
var MaxCouponAmount = decimal.NewFromInt(1_000_000)

var (
	ErrInvalidStrategy = errors.New("invalid pricing strategy")
	ErrInvalidParam    = errors.New("invalid pricing parameter")
)

// Params carries the wire parameters of a strategy.
type Params struct {
	CouponCode   string
	CouponAmount string
	Points       string
}

// Parse builds a strategy from its code and parameters.
func Parse(code string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", CodeRegular:
		return Regular{}, nil
	case CodeHappyHour:
		return HappyHour{}, nil
	case CodeCoupon:
		if p.CouponCode == "" {
			return nil, fmt.Errorf("%w: coupon code is required", ErrInvalidParam)
		}
		amount, err := parseAmount(p.CouponAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: coupon amount %q", ErrInvalidParam, p.CouponAmount)
		}
		return NewCoupon(p.CouponCode, amount), nil
	case CodeLoyalty:
		points, err := strconv.Atoi(p.Points)
		if err != nil || points < 0 {
			return nil, fmt.Errorf("%w: points %q", ErrInvalidParam, p.Points)
		}
		return NewLoyalty(points), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, code)
}

// parseAmount accepts non-negative amounts with at most two decimal places
// up to MaxCouponAmount. The exponent is checked before any comparison.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := amount.Exponent(); exp < -2 || exp > 6 {
		return decimal.Zero, fmt.Errorf("exponent %d out of range", exp)
	}
	if amount.IsNegative() || amount.GreaterThan(MaxCouponAmount) {
		return decimal.Zero, errors.New("out of range")
	}
	return amount, nil
}

// Quote is the priced view of an order under one strategy.
type Quote struct {
	Strategy string
	Total    decimal.Decimal
	Final    decimal.Decimal
	Discount decimal.Decimal
}

// Service holds the active strategy. It is safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	strategy Strategy
}

// NewService creates a Service using s, or Regular when s is nil.
func NewService(s Strategy) *Service {
	if s == nil {
		s = Regular{}
	}
	return &Service{strategy: s}
}

// SetStrategy replaces the active strategy. nil restores Regular.
func (s *Service) SetStrategy(st Strategy) {
	if st == nil {
		st = Regular{}
	}
	s.mu.Lock()
	s.strategy = st
	s.mu.Unlock()
}

// Strategy returns the active strategy.
func (s *Service) Strategy() Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// FinalPrice delegates to the active strategy.
func (s *Service) FinalPrice(o Totaler) decimal.Decimal {
	return s.Strategy().FinalPrice(o)
}

// Quote prices o with the active strategy.
func (s *Service) Quote(o Totaler) Quote {
	return QuoteWith(s.Strategy(), o)
}

// QuoteWith prices o with st.
func QuoteWith(st Strategy, o Totaler) Quote {
	total := o.Total()
	final := st.FinalPrice(o)
	return Quote{
		Strategy: st.Name(),
		Total:    total,
		Final:    final,
		Discount: total.Sub(final),
	}
}
