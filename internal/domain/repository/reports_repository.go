package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesRow ingresos y ganancia bruta de un día (ventas completadas).
type DailySalesRow struct {
	Day     time.Time
	Revenue decimal.Decimal
	Margin  decimal.Decimal
}

// EmployeeSalesRow ingresos y ganancia por operador.
type EmployeeSalesRow struct {
	Username string
	Revenue  decimal.Decimal
	Margin   decimal.Decimal
}

// TopProductRow producto con unidades vendidas.
type TopProductRow struct {
	ProductID string
	Name      string
	Units     int
}

// PeriodTotals ingresos y ganancia agregados de un período o jornada.
type PeriodTotals struct {
	Revenue decimal.Decimal
	Margin  decimal.Decimal
}

// ClientTotals analítica del perfil de un cliente.
type ClientTotals struct {
	TotalSpent decimal.Decimal
	Purchases  int
	Voided     int
}

// ReportsRepository consultas de solo lectura para dashboard y reportes.
// Todas excluyen ventas anuladas salvo que se indique lo contrario.
type ReportsRepository interface {
	DailySales(days int) ([]DailySalesRow, error)
	SalesByEmployeeMonth(ref time.Time) ([]EmployeeSalesRow, error)
	TopProductsMonth(ref time.Time, limit int) ([]TopProductRow, error)
	TodayTotals() (PeriodTotals, error)
	ShiftTotals(shiftID string) (PeriodTotals, error)
	TopProductToday() (*TopProductRow, error)
	ClientTotals(clientID string) (ClientTotals, error)
}
