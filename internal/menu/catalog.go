package menu

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Extra codes accepted by Catalog.Build.
const (
	ExtraBacon        = "BACON"
	ExtraCheese       = "EXTRA_CHEESE"
	ExtraSpecialSauce = "SPECIAL_SAUCE"
	ExtraPortion      = "EXTRA_PORTION"
)

// Errors returned by the catalog.
var (
	ErrUnknownMenuItem = errors.New("unknown menu item")
	ErrUnknownExtra    = errors.New("unknown extra")
	ErrSauceRequired   = errors.New("sauce is required for SPECIAL_SAUCE")
)

// Extra is a requested modifier. Sauce is only read for SPECIAL_SAUCE.
type Extra struct {
	Code  string
	Sauce string
}

// Entry is a catalog listing.
type Entry struct {
	Code string
	Item *Item
}

// Catalog holds the base items that can be ordered, keyed by code.
type Catalog struct {
	items map[string]*Item
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]*Item)}
}

// Add registers (or replaces) a base item under code.
func (c *Catalog) Add(code string, item *Item) {
	if item == nil {
		panic("menu: add nil item")
	}
	c.items[code] = item
}

// Lookup returns the base item registered under code.
func (c *Catalog) Lookup(code string) (*Item, bool) {
	it, ok := c.items[code]
	return it, ok
}

// Entries lists the catalog sorted by code.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.items))
	for code, it := range c.items {
		entries = append(entries, Entry{Code: code, Item: it})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}

// Build looks up code and wraps it with extras in the given order,
// the first extra being the innermost layer. Every call returns a new
// item, so two builds of the same code are distinct order lines.
func (c *Catalog) Build(code string, extras ...Extra) (MenuItem, error) {
	base, ok := c.items[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMenuItem, code)
	}

	var item MenuItem = NewItem(base.name, base.description, base.price)
	for i, ex := range extras {
		switch ex.Code {
		case ExtraBacon:
			item = WithBacon(item)
		case ExtraCheese:
			item = WithExtraCheese(item)
		case ExtraSpecialSauce:
			if ex.Sauce == "" {
				return nil, fmt.Errorf("extras[%d]: %w", i, ErrSauceRequired)
			}
			item = WithSpecialSauce(item, ex.Sauce)
		case ExtraPortion:
			item = WithExtraPortion(item)
		default:
			return nil, fmt.Errorf("extras[%d]: %w: %s", i, ErrUnknownExtra, ex.Code)
		}
	}
	return item, nil
}

// ExtraCodes lists the modifier codes Build understands.
func ExtraCodes() []string {
	return []string{ExtraBacon, ExtraCheese, ExtraSpecialSauce, ExtraPortion}
}

// DefaultCatalog returns the house menu.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Add("BURGER", NewItem("Hambúrguer Artesanal", "Pão, carne, alface, tomate", decimal.RequireFromString("25.00")))
	c.Add("FRIES", NewItem("Batata Frita", "Batatas crocantes", decimal.RequireFromString("12.00")))
	c.Add("PIZZA", NewItem("Pizza Margherita", "Molho, queijo, manjericão", decimal.RequireFromString("35.00")))
	c.Add("SODA", NewItem("Refrigerante", "Lata 350ml", decimal.RequireFromString("5.00")))
	c.Add("CARBONARA", NewItem("Macarrão à Carbonara", "Massa, bacon, queijo, ovos", decimal.RequireFromString("28.00")))
	c.Add("PICANHA", NewItem("Picanha Grelhada", "300g de picanha com acompanhamentos", decimal.RequireFromString("45.00")))
	c.Add("JUICE", NewItem("Suco Natural", "Laranja 500ml", decimal.RequireFromString("8.00")))
	return c
}
