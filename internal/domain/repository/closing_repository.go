package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// ClosingRepository puerto de persistencia de arqueos por método de pago.
type ClosingRepository interface {
	Create(closing *entity.PaymentMethodClosing) error
	ListByShift(shiftID string) ([]*entity.PaymentMethodClosing, error)
}
