package order

import "github.com/shopspring/decimal"

// CreateOrderRequest payload de creación de pedido.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	ClientName string `json:"clientName" example:"Ana"`
	Channel    string `json:"channel" example:"Instagram"`
	Detail     string `json:"detail" example:"2x Arábica 250g"`
	// Number or decimal string. Required.
	TotalAmount *decimal.Decimal `json:"totalAmount" swaggertype:"string" example:"360.00"`
}

// UpdateStatusRequest payload de cambio de estado. Accepts the enum value
// or its label.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"Paid"`
}
