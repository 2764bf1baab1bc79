package stock

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// UseCase ajustes manuales de inventario y reporte de movimientos.
type UseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
}

// NewUseCase crea el caso de uso de inventario.
func NewUseCase(txRunner TxRunner, movementRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, movementRepo: movementRepo}
}

// Adjust aplica un ajuste manual de stock (merma, rotura, entrada de mercadería).
// El delta no puede ser cero y el motivo es obligatorio.
func (uc *UseCase) Adjust(ctx context.Context, userID string, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if req.ProductID == "" || req.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.AdjustStockResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		movement, err := ApplyMovement(productRepo, movementRepo, product,
			req.Quantity, entity.MovementAdjustment, req.Reason, userID, time.Now())
		if err != nil {
			return err
		}

		resp = &dto.AdjustStockResponse{
			ProductID:  product.ID,
			MovementID: movement.ID,
			NewStock:   product.Stock,
			LowStock:   product.LowStock(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Movements devuelve el reporte de movimientos, filtrable por producto y tipo.
func (uc *UseCase) Movements(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	movements, err := uc.movementRepo.List(filter)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, dto.MovementResponse{
			ID:        m.ID,
			Date:      m.Date,
			Quantity:  m.Quantity,
			Kind:      string(m.Kind),
			Reason:    m.Reason,
			ProductID: m.ProductID,
			UserID:    m.UserID,
		})
	}
	return resp, nil
}
