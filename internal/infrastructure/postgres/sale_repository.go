package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, date, total, gross_margin, status, payment_method, user_id, shift_id, client_id`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, total, gross_margin, status, payment_method, user_id, shift_id, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.Total, sale.GrossMargin, sale.Status,
		sale.PaymentMethod, sale.UserID, sale.ShiftID, sale.ClientID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine persiste una línea con precio y costo congelados.
func (r *SaleRepo) CreateLine(line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SaleID, line.ProductID, line.Quantity, line.UnitPrice, line.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &s.Total, &s.GrossMargin, &s.Status,
		&s.PaymentMethod, &s.UserID, &s.ShiftID, &s.ClientID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetLines líneas de una venta.
func (r *SaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, unit_cost
		FROM sale_lines WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// MarkVoided anula la venta solo si sigue completada. El UPDATE condicional
// además bloquea la fila, de modo que dos anulaciones concurrentes se
// serializan y la segunda no afecta filas.
func (r *SaleRepo) MarkVoided(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1 AND status = $3`,
		id, entity.SaleStatusVoided, entity.SaleStatusCompleted)
	if err != nil {
		return fmt.Errorf("mark sale voided: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyVoided
	}
	return nil
}

// TotalsByPaymentMethod suma las ventas completadas de una jornada agrupadas
// por método de pago. Lectura pura: no hay acumuladores que mantener, el
// total esperado del arqueo siempre sale de las filas confirmadas.
func (r *SaleRepo) TotalsByPaymentMethod(shiftID string) (map[entity.PaymentMethod]decimal.Decimal, error) {
	query := `
		SELECT payment_method, COALESCE(SUM(total), 0)
		FROM sales
		WHERE shift_id = $1 AND status = $2
		GROUP BY payment_method`
	rows, err := r.q.Query(context.Background(), query, shiftID, entity.SaleStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("totals by payment method: %w", err)
	}
	defer rows.Close()

	totals := make(map[entity.PaymentMethod]decimal.Decimal)
	for rows.Next() {
		var method entity.PaymentMethod
		var total decimal.Decimal
		if err := rows.Scan(&method, &total); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals[method] = total
	}
	return totals, rows.Err()
}

// List historial de ventas paginado, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListByClient ventas de un cliente, más recientes primero.
func (r *SaleRepo) ListByClient(clientID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE client_id = $1 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list sales by client: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// CountByProduct cuántas líneas de venta referencian al producto (bloquea su borrado).
func (r *SaleRepo) CountByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM sale_lines WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales by product: %w", err)
	}
	return n, nil
}

// CountByClient cuántas ventas tiene un cliente (bloquea su borrado).
func (r *SaleRepo) CountByClient(clientID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM sales WHERE client_id = $1`, clientID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales by client: %w", err)
	}
	return n, nil
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Total, &s.GrossMargin, &s.Status,
			&s.PaymentMethod, &s.UserID, &s.ShiftID, &s.ClientID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
