package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ApplyMovement aplica un delta de stock sobre un producto ya bloqueado
// (SELECT FOR UPDATE) y registra el movimiento de auditoría. Ambas escrituras
// deben ocurrir dentro de la misma transacción: los repositorios recibidos
// tienen que estar ligados a ella.
//
// El delta lleva signo: negativo descuenta (venta), positivo repone
// (anulación, ajuste de entrada). Si el stock resultante fuera negativo no se
// escribe nada y se devuelve ErrInsufficientStock. Actualiza product.Stock en
// memoria para que el llamador pueda encadenar movimientos sobre el mismo
// producto sin releer la fila.
func ApplyMovement(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	product *entity.Product,
	delta int,
	kind entity.MovementKind,
	reason string,
	userID string,
	at time.Time,
) (*entity.StockMovement, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, domain.ErrInsufficientStock
	}

	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		Date:      at,
		Quantity:  delta,
		Kind:      kind,
		Reason:    reason,
		ProductID: product.ID,
		UserID:    userID,
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, err
	}

	product.Stock = newStock
	return movement, nil
}
