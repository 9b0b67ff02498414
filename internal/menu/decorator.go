package menu

import "github.com/shopspring/decimal"

// Modifier prices.
var (
	BaconPrice         = decimal.RequireFromString("5.00")
	ExtraCheesePrice   = decimal.RequireFromString("3.50")
	SpecialSaucePrice  = decimal.RequireFromString("2.00")
	ExtraPortionFactor = decimal.RequireFromString("1.5")
)

// Adjustment describes one layer of a decorated item.
// The wrapped price is scaled by Factor (a zero Factor leaves it untouched)
// and then shifted by Delta.
type Adjustment struct {
	Code              string
	NameSuffix        string
	DescriptionSuffix string
	Delta             decimal.Decimal
	Factor            decimal.Decimal
}

// Decorated wraps exactly one MenuItem with an Adjustment.
// It never mutates the wrapped item.
type Decorated struct {
	inner MenuItem
	adj   Adjustment
}

// Decorate layers adj over item. It panics if item is nil.
func Decorate(item MenuItem, adj Adjustment) *Decorated {
	if item == nil {
		panic("menu: decorate nil item")
	}
	return &Decorated{inner: item, adj: adj}
}

func (d *Decorated) Name() string {
	return d.inner.Name() + d.adj.NameSuffix
}

func (d *Decorated) Description() string {
	return d.inner.Description() + d.adj.DescriptionSuffix
}

// Price applies this layer to the price of the immediately wrapped item,
// so the order in which layers are stacked changes the result.
func (d *Decorated) Price() decimal.Decimal {
	p := d.inner.Price()
	if !d.adj.Factor.IsZero() {
		p = p.Mul(d.adj.Factor)
	}
	return p.Add(d.adj.Delta)
}

// Unwrap returns the wrapped item.
func (d *Decorated) Unwrap() MenuItem { return d.inner }

// Adjustment returns this layer's adjustment.
func (d *Decorated) Adjustment() Adjustment { return d.adj }

// Adjustments lists the layers of item, innermost first.
func Adjustments(item MenuItem) []Adjustment {
	var layers []Adjustment
	for {
		d, ok := item.(*Decorated)
		if !ok {
			break
		}
		layers = append(layers, d.adj)
		item = d.inner
	}
	for i, j := 0, len(layers)-1; i < j; i, j = i+1, j-1 {
		layers[i], layers[j] = layers[j], layers[i]
	}
	return layers
}

// Base returns the undecorated item at the bottom of the chain.
func Base(item MenuItem) MenuItem {
	for {
		d, ok := item.(*Decorated)
		if !ok {
			return item
		}
		item = d.inner
	}
}

// WithBacon adds crispy bacon.
func WithBacon(item MenuItem) *Decorated {
	return Decorate(item, Adjustment{
		Code:              ExtraBacon,
		NameSuffix:        " + Bacon",
		DescriptionSuffix: ", com bacon crocante",
		Delta:             BaconPrice,
	})
}

// WithExtraCheese adds extra cheese.
func WithExtraCheese(item MenuItem) *Decorated {
	return Decorate(item, Adjustment{
		Code:              ExtraCheese,
		NameSuffix:        " + Queijo Extra",
		DescriptionSuffix: ", com queijo extra",
		Delta:             ExtraCheesePrice,
	})
}

// WithSpecialSauce adds the named sauce.
func WithSpecialSauce(item MenuItem, sauce string) *Decorated {
	return Decorate(item, Adjustment{
		Code:              ExtraSpecialSauce,
		NameSuffix:        " + Molho " + sauce,
		DescriptionSuffix: ", com molho " + sauce,
		Delta:             SpecialSaucePrice,
	})
}

// WithExtraPortion doubles the portion for 50% more.
func WithExtraPortion(item MenuItem) *Decorated {
	return Decorate(item, Adjustment{
		Code:              ExtraPortion,
		NameSuffix:        " (Porção Extra)",
		DescriptionSuffix: " - PORÇÃO DOBRADA",
		Factor:            ExtraPortionFactor,
	})
}
