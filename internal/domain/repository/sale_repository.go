package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	GetLines(saleID string) ([]*entity.SaleLine, error)
	// MarkVoided pasa la venta de completada a anulada. La condición de
	// estado va en el propio UPDATE: si otra transacción la anuló primero,
	// no afecta filas y devuelve domain.ErrAlreadyVoided.
	MarkVoided(id string) error
	// TotalsByPaymentMethod suma total de las ventas completadas de la
	// jornada, agrupado por método de pago. Lectura pura, recalculada bajo
	// demanda; refleja ventas y anulaciones confirmadas hasta el momento.
	TotalsByPaymentMethod(shiftID string) (map[entity.PaymentMethod]decimal.Decimal, error)
	List(limit, offset int) ([]*entity.Sale, error)
	ListByClient(clientID string) ([]*entity.Sale, error)
	CountByProduct(productID string) (int, error)
	CountByClient(clientID string) (int, error)
}
