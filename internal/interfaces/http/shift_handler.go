package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/shifts"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ShiftHandler apertura, cierre e historial de jornadas.
type ShiftHandler struct {
	uc *shifts.UseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shifts.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir jornada
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.OpenShiftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shifts/open [post]
func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	out, err := h.uc.Open(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Active godoc
// @Summary      Jornada activa del operador
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OpenShiftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/active [get]
func (h *ShiftHandler) Active(c *fiber.Ctx) error {
	shift, err := h.uc.Active(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if shift == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SHIFT", Message: "no hay jornada activa"})
	}
	return c.JSON(dto.OpenShiftResponse{ShiftID: shift.ID, StartedAt: shift.StartedAt})
}

// ExpectedTotals godoc
// @Summary      Totales esperados por método de la jornada activa (pantalla de cierre)
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpectedTotalsResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shifts/expected [get]
func (h *ShiftHandler) ExpectedTotals(c *fiber.Ctx) error {
	out, err := h.uc.ExpectedTotals(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar jornada con arqueo por método de pago
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseShiftRequest  true  "Montos contados y notas"
// @Success      200   {object}  dto.CloseShiftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shifts/close [post]
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Close(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de jornadas cerradas con sus arqueos
// @Description  Un admin ve todas las jornadas y puede filtrar por operador y día; un empleado solo ve las suyas.
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Filtrar por operador (solo admin)"
// @Param        day      query  string  false  "Filtrar por día de inicio (YYYY-MM-DD)"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {array}  dto.ShiftHistoryItem
// @Router       /api/shifts/history [get]
func (h *ShiftHandler) History(c *fiber.Ctx) error {
	filter := repository.ShiftHistoryFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	// El empleado queda fijado a sus propias jornadas.
	if GetRole(c) == entity.RoleAdmin {
		filter.UserID = c.Query("user_id")
	} else {
		filter.UserID = GetUserID(c)
	}
	if day := c.Query("day"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day debe ser YYYY-MM-DD"})
		}
		filter.Day = &parsed
	}
	out, err := h.uc.History(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
