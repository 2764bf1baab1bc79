package entity

import "time"

// MovementKind es la enumeración cerrada de tipos de movimiento de stock.
type MovementKind string

const (
	MovementSale       MovementKind = "venta"
	MovementSaleVoid   MovementKind = "anulacion_venta"
	MovementAdjustment MovementKind = "ajuste_manual"
)

// Valid indica si el tipo de movimiento pertenece al conjunto reconocido.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementSale, MovementSaleVoid, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement es un registro de auditoría inmutable: nunca se actualiza ni
// se borra. Quantity es el delta con signo (positivo entrada, negativo salida).
// La suma de deltas de un producto reconcilia con su cambio neto de stock
// (el stock inicial se fija directo al crear el producto, sin movimiento).
type StockMovement struct {
	ID        string
	Date      time.Time
	Quantity  int // delta con signo
	Kind      MovementKind
	Reason    string // texto libre en ajustes manuales; vacío en ventas
	ProductID string
	UserID    string
}
