package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock vivo.
// Invariante: Stock >= 0 después de cualquier operación confirmada.
// Cost <= Price se valida al crear/editar, no al vender.
type Product struct {
	ID          string
	Name        string // único
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // precio de costo
	Stock       int
	MinStock    int // umbral de alerta de stock bajo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral de alerta.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
