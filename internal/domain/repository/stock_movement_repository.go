package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// MovementFilter filtros del reporte de movimientos de stock.
type MovementFilter struct {
	ProductID string              // vacío = todos
	Kind      entity.MovementKind // vacío = todos
	Limit     int
	Offset    int
}

// StockMovementRepository puerto del log de movimientos (solo inserción y lectura;
// el log es inmutable por diseño).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
