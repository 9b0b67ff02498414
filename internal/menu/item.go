// Package menu models priced catalog entries and the modifiers that can be
// layered on top of them.
package menu

import "github.com/shopspring/decimal"

// MenuItem is anything that can be sold as a line of an order.
type MenuItem interface {
	Name() string
	Description() string
	Price() decimal.Decimal
}

// Item is a plain catalog entry without modifiers.
type Item struct {
	name        string
	description string
	price       decimal.Decimal
}

// NewItem creates a base menu item.
func NewItem(name, description string, price decimal.Decimal) *Item {
	return &Item{name: name, description: description, price: price}
}

func (i *Item) Name() string           { return i.name }
func (i *Item) Description() string    { return i.description }
func (i *Item) Price() decimal.Decimal { return i.price }
