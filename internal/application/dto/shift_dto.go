package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenShiftResponse respuesta de apertura de jornada.
type OpenShiftResponse struct {
	ShiftID   string    `json:"shift_id"`
	StartedAt time.Time `json:"started_at"`
}

// CloseShiftRequest body para POST /api/shifts/close.
// Counted mapea método de pago → monto contado; un método ausente cuenta como 0
// (operador que no recaudó nada en ese método no ingresa nada).
type CloseShiftRequest struct {
	Notes   string                     `json:"notes,omitempty"`
	Counted map[string]decimal.Decimal `json:"counted"`
}

// ClosingResponse arqueo de un método de pago.
type ClosingResponse struct {
	Method   string          `json:"method"`
	Expected decimal.Decimal `json:"expected"`
	Counted  decimal.Decimal `json:"counted"`
	Variance decimal.Decimal `json:"variance"`
}

// Resultado del arqueo de efectivo.
const (
	CashOutcomeBalanced = "cuadrada"
	CashOutcomeSurplus  = "sobrante"
	CashOutcomeShortage = "faltante"
)

// CloseShiftResponse resultado del cierre: arqueos por método y veredicto de caja.
type CloseShiftResponse struct {
	ShiftID      string            `json:"shift_id"`
	EndedAt      time.Time         `json:"ended_at"`
	Closings     []ClosingResponse `json:"closings"`
	CashOutcome  string            `json:"cash_outcome"` // cuadrada, sobrante, faltante
	CashVariance decimal.Decimal   `json:"cash_variance"`
}

// ExpectedTotalsResponse totales esperados por método de la jornada activa
// (pantalla previa al cierre).
type ExpectedTotalsResponse struct {
	ShiftID  string                     `json:"shift_id"`
	Expected map[string]decimal.Decimal `json:"expected"`
}

// ShiftHistoryItem jornada cerrada con sus arqueos.
type ShiftHistoryItem struct {
	ID       string            `json:"id"`
	UserID   string            `json:"user_id"`
	Started  time.Time         `json:"started_at"`
	Ended    *time.Time        `json:"ended_at"`
	Duration string            `json:"duration"`
	Notes    string            `json:"notes,omitempty"`
	Closings []ClosingResponse `json:"closings"`
}
