package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas de agregación para dashboard y reportes. Todas
// excluyen ventas anuladas: el estado de la venta es el filtro, nunca hay
// que restar anulaciones.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository construye el adaptador de reportes.
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// DailySales ingresos y ganancia por día de los últimos N días.
func (r *ReportsRepo) DailySales(days int) ([]repository.DailySalesRow, error) {
	query := `
		SELECT date::date AS day, SUM(total), SUM(gross_margin)
		FROM sales
		WHERE status = $1 AND date >= current_date - make_interval(days => $2)
		GROUP BY day ORDER BY day ASC`
	rows, err := r.q.Query(context.Background(), query, entity.SaleStatusCompleted, days)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()
	var list []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Margin); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesByEmployeeMonth ingresos y ganancia por operador del mes de ref.
func (r *ReportsRepo) SalesByEmployeeMonth(ref time.Time) ([]repository.EmployeeSalesRow, error) {
	query := `
		SELECT u.username, SUM(s.total), SUM(s.gross_margin)
		FROM sales s
		JOIN users u ON u.id = s.user_id
		WHERE s.status = $1 AND date_trunc('month', s.date) = date_trunc('month', $2::timestamptz)
		GROUP BY u.username ORDER BY SUM(s.total) DESC`
	rows, err := r.q.Query(context.Background(), query, entity.SaleStatusCompleted, ref)
	if err != nil {
		return nil, fmt.Errorf("sales by employee: %w", err)
	}
	defer rows.Close()
	var list []repository.EmployeeSalesRow
	for rows.Next() {
		var row repository.EmployeeSalesRow
		if err := rows.Scan(&row.Username, &row.Revenue, &row.Margin); err != nil {
			return nil, fmt.Errorf("scan employee sales: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TopProductsMonth productos más vendidos del mes de ref por unidades.
func (r *ReportsRepo) TopProductsMonth(ref time.Time, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT p.id, p.name, SUM(l.quantity)::int AS units
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		JOIN products p ON p.id = l.product_id
		WHERE s.status = $1 AND date_trunc('month', s.date) = date_trunc('month', $2::timestamptz)
		GROUP BY p.id, p.name ORDER BY units DESC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, entity.SaleStatusCompleted, ref, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Units); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TodayTotals ingresos y ganancia de hoy (todas las jornadas).
func (r *ReportsRepo) TodayTotals() (repository.PeriodTotals, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(gross_margin), 0)
		FROM sales WHERE status = $1 AND date::date = current_date`
	var totals repository.PeriodTotals
	err := r.q.QueryRow(context.Background(), query, entity.SaleStatusCompleted).Scan(&totals.Revenue, &totals.Margin)
	if err != nil {
		return totals, fmt.Errorf("today totals: %w", err)
	}
	return totals, nil
}

// ShiftTotals ingresos y ganancia de una jornada.
func (r *ReportsRepo) ShiftTotals(shiftID string) (repository.PeriodTotals, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(gross_margin), 0)
		FROM sales WHERE status = $1 AND shift_id = $2`
	var totals repository.PeriodTotals
	err := r.q.QueryRow(context.Background(), query, entity.SaleStatusCompleted, shiftID).Scan(&totals.Revenue, &totals.Margin)
	if err != nil {
		return totals, fmt.Errorf("shift totals: %w", err)
	}
	return totals, nil
}

// TopProductToday el producto más vendido de hoy, o nil si no hubo ventas.
func (r *ReportsRepo) TopProductToday() (*repository.TopProductRow, error) {
	query := `
		SELECT p.id, p.name, SUM(l.quantity)::int AS units
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		JOIN products p ON p.id = l.product_id
		WHERE s.status = $1 AND s.date::date = current_date
		GROUP BY p.id, p.name ORDER BY units DESC LIMIT 1`
	var row repository.TopProductRow
	err := r.q.QueryRow(context.Background(), query, entity.SaleStatusCompleted).Scan(&row.ProductID, &row.Name, &row.Units)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("top product today: %w", err)
	}
	return &row, nil
}

// ClientTotals acumulados del perfil de un cliente. Las anuladas no suman
// gasto pero sí se cuentan aparte.
func (r *ReportsRepo) ClientTotals(clientID string) (repository.ClientTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(total) FILTER (WHERE status = $2), 0),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM sales WHERE client_id = $1`
	var totals repository.ClientTotals
	err := r.q.QueryRow(context.Background(), query, clientID,
		entity.SaleStatusCompleted, entity.SaleStatusVoided,
	).Scan(&totals.TotalSpent, &totals.Purchases, &totals.Voided)
	if err != nil {
		return totals, fmt.Errorf("client totals: %w", err)
	}
	return totals, nil
}
