package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.ClosingRepository = (*ClosingRepo)(nil)

// ClosingRepo implementación del puerto ClosingRepository sobre PostgreSQL.
// Los arqueos son el snapshot del cierre: se insertan una vez y no cambian.
type ClosingRepo struct {
	q Querier
}

// NewClosingRepository construye el adaptador de persistencia para arqueos.
func NewClosingRepository(q Querier) *ClosingRepo {
	return &ClosingRepo{q: q}
}

// Create persiste el arqueo de un método de pago.
func (r *ClosingRepo) Create(closing *entity.PaymentMethodClosing) error {
	query := `
		INSERT INTO payment_method_closings (id, shift_id, method, expected, counted, variance)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		closing.ID, closing.ShiftID, closing.Method,
		closing.Expected, closing.Counted, closing.Variance,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert closing: %w", err)
	}
	return nil
}

// ListByShift arqueos de una jornada ordenados por método.
func (r *ClosingRepo) ListByShift(shiftID string) ([]*entity.PaymentMethodClosing, error) {
	query := `
		SELECT id, shift_id, method, expected, counted, variance
		FROM payment_method_closings
		WHERE shift_id = $1 ORDER BY method ASC`
	rows, err := r.q.Query(context.Background(), query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("list closings: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethodClosing
	for rows.Next() {
		var c entity.PaymentMethodClosing
		if err := rows.Scan(&c.ID, &c.ShiftID, &c.Method, &c.Expected, &c.Counted, &c.Variance); err != nil {
			return nil, fmt.Errorf("scan closing: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
