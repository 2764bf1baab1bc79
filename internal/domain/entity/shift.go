package entity

import (
	"fmt"
	"time"
)

// Shift representa una jornada (turno) de un operador.
// Invariante: a lo sumo una jornada con Active=true por usuario, reforzada por
// índice único parcial en la base además del chequeo del caso de uso.
type Shift struct {
	ID           string
	UserID       string
	StartedAt    time.Time
	EndedAt      *time.Time // nil mientras está abierta
	Active       bool
	ClosingNotes string
}

// Duration devuelve la duración legible de la jornada, o "en curso" si sigue abierta.
func (s *Shift) Duration() string {
	if s.EndedAt == nil {
		return "en curso"
	}
	d := s.EndedAt.Sub(s.StartedAt).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, sec)
}
