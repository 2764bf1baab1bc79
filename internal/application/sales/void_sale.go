package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Caja-api/internal/application/stock"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// VoidSaleUseCase anula ventas devolviendo el stock vendido.
type VoidSaleUseCase struct {
	txRunner TxRunner
}

// NewVoidSaleUseCase crea el caso de uso de anulación.
func NewVoidSaleUseCase(txRunner TxRunner) *VoidSaleUseCase {
	return &VoidSaleUseCase{txRunner: txRunner}
}

// Execute anula una venta completada: repone el stock de cada línea con un
// movimiento de anulación y marca la venta como anulada. El total y la
// ganancia de la venta no se tocan; el estado es lo que excluye la venta de
// los reportes. Si algún producto de las líneas ya no existe, la anulación
// entera se aborta.
func (uc *VoidSaleUseCase) Execute(ctx context.Context, userID, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ShiftRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Voided() {
			return domain.ErrAlreadyVoided
		}

		// El cambio de estado va primero: el UPDATE condicional bloquea la
		// fila de la venta, y de dos anulaciones concurrentes solo una lo
		// logra; la otra ve cero filas afectadas y no repone nada.
		if err := saleRepo.MarkVoided(saleID); err != nil {
			return err
		}

		lines, err := saleRepo.GetLines(saleID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}

			if _, err := stock.ApplyMovement(productRepo, movementRepo, product,
				line.Quantity, entity.MovementSaleVoid, "", userID, now); err != nil {
				return err
			}
		}

		return nil
	})
}
