package entity

import "github.com/shopspring/decimal"

// PaymentMethodClosing es el arqueo de un método de pago al cierre de jornada.
// Se crea una fila por método con al menos una venta completada en la jornada;
// inmutable una vez persistida. Variance = Counted − Expected.
type PaymentMethodClosing struct {
	ID       string
	ShiftID  string
	Method   PaymentMethod
	Expected decimal.Decimal // calculado por el sistema
	Counted  decimal.Decimal // ingresado por el operador (vacío = 0)
	Variance decimal.Decimal
}
