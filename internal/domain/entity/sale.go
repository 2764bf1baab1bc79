package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completada"
	SaleStatusVoided    = "anulada"
)

// PaymentMethod es la enumeración cerrada de métodos de pago reconocidos.
// Un valor fuera del conjunto se rechaza antes de cualquier escritura.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "efectivo"
	PaymentDebitCard  PaymentMethod = "tarjeta_debito"
	PaymentCreditCard PaymentMethod = "tarjeta_credito"
	PaymentTransfer   PaymentMethod = "transferencia"
)

// Valid indica si el método de pago pertenece al conjunto reconocido.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentDebitCard, PaymentCreditCard, PaymentTransfer:
		return true
	}
	return false
}

// Sale representa una venta atribuida a exactamente una jornada y un operador.
// Total y GrossMargin son la suma de sus líneas al momento de crearla y no se
// recalculan nunca (anular solo cambia el estado y repone stock).
type Sale struct {
	ID            string
	Date          time.Time
	Total         decimal.Decimal
	GrossMargin   decimal.Decimal
	Status        string // completada, anulada
	PaymentMethod PaymentMethod
	UserID        string
	ShiftID       string
	ClientID      *string // opcional
}

// Voided indica si la venta ya fue anulada.
func (s *Sale) Voided() bool { return s.Status == SaleStatusVoided }

// SaleLine es una línea de venta, inmutable una vez creada.
// UnitPrice y UnitCost se capturan al vender, independientes de cambios
// posteriores del producto.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
}

// Revenue devuelve el ingreso de la línea (precio unitario × cantidad).
func (l *SaleLine) Revenue() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Margin devuelve la ganancia bruta de la línea ((precio − costo) × cantidad).
func (l *SaleLine) Margin() decimal.Decimal {
	return l.UnitPrice.Sub(l.UnitCost).Mul(decimal.NewFromInt(int64(l.Quantity)))
}
