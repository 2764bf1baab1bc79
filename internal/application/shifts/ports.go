package shifts

import (
	"context"

	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios que el
// cierre de jornada necesita: totales de ventas, arqueos y la propia jornada.
// Congelar totales, persistir arqueos y cerrar la jornada es una sola unidad
// atómica.
type TxRunner interface {
	RunShiftClose(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		shiftRepo repository.ShiftRepository,
		closingRepo repository.ClosingRepository,
	) error) error
}
