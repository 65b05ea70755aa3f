package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-altura/internal/apperr"
)

// PriceOption is one weight/price pair a bean is sold in.
// swagger:model PriceOption
type PriceOption struct {
	Weight string          `json:"weight" example:"250g"`
	Amount decimal.Decimal `json:"amount" example:"180.00"`
}

// Product is a coffee bean ("grano") in the catalog.
// swagger:model Product
type Product struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Origin string        `json:"origin"`
	Notes  string        `json:"notes"`
	Prices []PriceOption `json:"prices"`
	Roasts []string      `json:"roasts"`
	Grinds []string      `json:"grinds"`
	// Set by the store; nil for seed input.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Validate checks the fixed shape of a catalog entry before it is stored.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validationf("product name is required")
	}
	if len(p.Prices) == 0 {
		return apperr.Validationf("product %q needs at least one price option", p.Name)
	}
	for _, po := range p.Prices {
		if strings.TrimSpace(po.Weight) == "" {
			return apperr.Validationf("product %q has a price option without weight", p.Name)
		}
		if !po.Amount.IsPositive() {
			return apperr.Validationf("product %q: amount for %s must be positive", p.Name, po.Weight)
		}
	}
	if len(p.Roasts) == 0 {
		return apperr.Validationf("product %q needs at least one roast", p.Name)
	}
	if len(p.Grinds) == 0 {
		return apperr.Validationf("product %q needs at least one grind", p.Name)
	}
	return nil
}

// Option returns the price option for a weight label.
func (p *Product) Option(weight string) (PriceOption, bool) {
	for _, po := range p.Prices {
		if po.Weight == weight {
			return po, true
		}
	}
	return PriceOption{}, false
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}
