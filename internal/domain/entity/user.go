package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// User representa un operador del punto de venta.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, empleado
	Active       bool   // cuenta habilitada para login
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
