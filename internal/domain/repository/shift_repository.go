package repository

import (
	"time"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ShiftHistoryFilter filtros del historial de jornadas cerradas.
type ShiftHistoryFilter struct {
	UserID string     // vacío = todos
	Day    *time.Time // nil = cualquier fecha (compara por día de inicio)
	Limit  int
	Offset int
}

// ShiftRepository puerto de persistencia para jornadas.
type ShiftRepository interface {
	// Create persiste una jornada nueva. El índice único parcial
	// (user_id WHERE active) convierte aperturas concurrentes en
	// domain.ErrShiftAlreadyOpen.
	Create(shift *entity.Shift) error
	GetByID(id string) (*entity.Shift, error)
	// GetForUpdate obtiene la jornada bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción: serializa ventas y cierre
	// sobre la misma jornada.
	GetForUpdate(id string) (*entity.Shift, error)
	// GetActiveByUser devuelve la jornada activa del usuario o nil.
	// A lo sumo una fila puede coincidir.
	GetActiveByUser(userID string) (*entity.Shift, error)
	Close(id string, endedAt time.Time, notes string) error
	ListClosed(filter ShiftHistoryFilter) ([]*entity.Shift, error)
	CountActive() (int, error)
}
