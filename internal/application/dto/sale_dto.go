package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea solicitada: producto y cantidad.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
// ShiftID es opcional; si viene, debe coincidir con la jornada activa del operador.
type CreateSaleRequest struct {
	ShiftID       string            `json:"shift_id,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	ClientID      string            `json:"client_id,omitempty"`
	Lines         []SaleLineRequest `json:"lines"`
}

// SaleCreatedResponse respuesta de creación de venta.
type SaleCreatedResponse struct {
	SaleID      string          `json:"sale_id"`
	Total       decimal.Decimal `json:"total"`
	GrossMargin decimal.Decimal `json:"gross_margin"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta completa para el historial.
type SaleResponse struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	Total         decimal.Decimal    `json:"total"`
	GrossMargin   decimal.Decimal    `json:"gross_margin"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	UserID        string             `json:"user_id"`
	ShiftID       string             `json:"shift_id"`
	ClientID      string             `json:"client_id,omitempty"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}
