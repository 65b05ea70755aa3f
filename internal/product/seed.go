package product

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// seedProduct accepts both the English field names and the Spanish ones used
// by the productos.json catalog export (nombre, precios{peso,valor}, ...).
type seedProduct struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`

	Name   string      `json:"name"`
	Origin string      `json:"origin"`
	Notes  string      `json:"notes"`
	Prices []seedPrice `json:"prices"`
	Roasts []string    `json:"roasts"`
	Grinds []string    `json:"grinds"`

	Nombre   string      `json:"nombre"`
	Origen   string      `json:"origen"`
	Notas    string      `json:"notas"`
	Precios  []seedPrice `json:"precios"`
	Tostados []string    `json:"tostados"`
	Molidos  []string    `json:"molidos"`
}

type seedPrice struct {
	Weight string           `json:"weight"`
	Amount *decimal.Decimal `json:"amount"`
	Peso   string           `json:"peso"`
	Valor  *decimal.Decimal `json:"valor"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s seedProduct) toProduct() Product {
	p := Product{
		ID:     firstNonEmpty(s.ID, s.MongoID),
		Name:   firstNonEmpty(s.Name, s.Nombre),
		Origin: firstNonEmpty(s.Origin, s.Origen),
		Notes:  firstNonEmpty(s.Notes, s.Notas),
		Roasts: s.Roasts,
		Grinds: s.Grinds,
	}
	if len(p.Roasts) == 0 {
		p.Roasts = s.Tostados
	}
	if len(p.Grinds) == 0 {
		p.Grinds = s.Molidos
	}
	prices := s.Prices
	if len(prices) == 0 {
		prices = s.Precios
	}
	for _, sp := range prices {
		po := PriceOption{Weight: firstNonEmpty(sp.Weight, sp.Peso)}
		switch {
		case sp.Amount != nil:
			po.Amount = *sp.Amount
		case sp.Valor != nil:
			po.Amount = *sp.Valor
		}
		p.Prices = append(p.Prices, po)
	}
	return p
}

// LoadSeed decodes a JSON array of products and validates each one.
func LoadSeed(r io.Reader) ([]Product, error) {
	var raw []seedProduct
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	out := make([]Product, 0, len(raw))
	for i, s := range raw {
		p := s.toProduct()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
