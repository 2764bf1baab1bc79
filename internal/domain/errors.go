package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores de persistencia traducen violaciones de constraints a estos
// valores; la capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrInternal       = errors.New("error interno")

	// Motor de ventas y stock.
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrEmptyLines           = errors.New("la venta no tiene líneas válidas")
	ErrInvalidPaymentMethod = errors.New("método de pago no reconocido")
	ErrAlreadyVoided        = errors.New("la venta ya fue anulada")
	ErrProductHasSales      = errors.New("el producto tiene ventas registradas")

	// Jornadas.
	ErrShiftAlreadyOpen = errors.New("ya existe una jornada activa para el usuario")
	ErrNoActiveShift    = errors.New("no hay jornada activa para el usuario")

	// Administración de usuarios.
	ErrLastAdmin = errors.New("no se puede degradar al último administrador")
)
