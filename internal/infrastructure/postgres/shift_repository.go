package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `id, user_id, started_at, ended_at, active, closing_notes`

// ShiftRepo implementación del puerto ShiftRepository sobre PostgreSQL.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de persistencia para jornadas.
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create persiste una jornada nueva. El índice único parcial
// (user_id WHERE active) convierte dos aperturas concurrentes del mismo
// operador en ErrShiftAlreadyOpen: gana la primera en confirmar.
func (r *ShiftRepo) Create(shift *entity.Shift) error {
	query := `
		INSERT INTO shifts (id, user_id, started_at, ended_at, active, closing_notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		shift.ID, shift.UserID, shift.StartedAt, shift.EndedAt, shift.Active, shift.ClosingNotes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrShiftAlreadyOpen
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID obtiene una jornada por ID.
func (r *ShiftRepo) GetByID(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la jornada bloqueando su fila. Ventas y cierre toman
// este lock sobre la misma jornada, así que se serializan entre sí.
func (r *ShiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByUser devuelve la jornada activa del operador o nil. El índice
// único parcial garantiza a lo sumo una fila.
func (r *ShiftRepo) GetActiveByUser(userID string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE user_id = $1 AND active`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID))
}

func (r *ShiftRepo) scanOne(row pgx.Row) (*entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.Active, &s.ClosingNotes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return &s, nil
}

// Close marca la jornada como cerrada con su hora de fin y notas.
func (r *ShiftRepo) Close(id string, endedAt time.Time, notes string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE shifts SET active = false, ended_at = $2, closing_notes = $3 WHERE id = $1 AND active`,
		id, endedAt, notes,
	)
	if err != nil {
		return fmt.Errorf("close shift: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoActiveShift
	}
	return nil
}

// ListClosed jornadas cerradas más recientes primero, filtrables por operador
// y por día de inicio.
func (r *ShiftRepo) ListClosed(filter repository.ShiftHistoryFilter) ([]*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE NOT active
		  AND ($1 = '' OR user_id = $1::uuid)
		  AND ($2::date IS NULL OR started_at::date = $2::date)
		ORDER BY started_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query,
		filter.UserID, filter.Day, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list closed shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shift
	for rows.Next() {
		var s entity.Shift
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.Active, &s.ClosingNotes); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountActive jornadas abiertas en este momento (dashboard).
func (r *ShiftRepo) CountActive() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM shifts WHERE active`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active shifts: %w", err)
	}
	return n, nil
}
