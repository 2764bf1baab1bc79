package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
)

// respondError traduce los errores de dominio a una respuesta HTTP con código
// estable. Todo error no mapeado es un 500 genérico: el detalle queda en los
// logs, nunca en la respuesta.
func respondError(c *fiber.Ctx, err error) error {
	status, code, message := translate(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func translate(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return fiber.StatusBadRequest, "INVALID_PAYMENT_METHOD", err.Error()
	case errors.Is(err, domain.ErrEmptyLines):
		return fiber.StatusBadRequest, "EMPTY_LINES", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "USER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, domain.ErrAlreadyVoided):
		return fiber.StatusConflict, "ALREADY_VOIDED", err.Error()
	case errors.Is(err, domain.ErrProductHasSales):
		return fiber.StatusConflict, "PRODUCT_HAS_SALES", err.Error()
	case errors.Is(err, domain.ErrShiftAlreadyOpen):
		return fiber.StatusConflict, "SHIFT_ALREADY_OPEN", err.Error()
	case errors.Is(err, domain.ErrNoActiveShift):
		return fiber.StatusConflict, "NO_ACTIVE_SHIFT", err.Error()
	case errors.Is(err, domain.ErrLastAdmin):
		return fiber.StatusConflict, "LAST_ADMIN", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno"
	}
}
