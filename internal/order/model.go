package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Channel is the social network an order came in through.
type Channel string

const (
	Instagram Channel = "Instagram"
	Facebook  Channel = "Facebook"
	WhatsApp  Channel = "WhatsApp"
)

var Channels = []Channel{Instagram, Facebook, WhatsApp}

// ParseChannel maps v to a known channel. Empty means Instagram.
func ParseChannel(v string) (Channel, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Instagram, true
	}
	for _, c := range Channels {
		if strings.EqualFold(v, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Order is an admin-recorded sale ("pedido"). Only Status changes after
// creation.
// swagger:model Order
type Order struct {
	ID          string          `json:"id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	ClientName  string          `json:"clientName" example:"Ana"`
	Channel     Channel         `json:"channel" example:"Instagram"`
	Detail      string          `json:"detail" example:"2x Arábica 250g"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"string" example:"360.00"`
	Status      Status          `json:"status" example:"Pending"`
	CreatedAt   time.Time       `json:"createdAt"`
}
