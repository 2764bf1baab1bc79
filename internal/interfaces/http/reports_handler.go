package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/reports"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ReportsHandler dashboard y reportes para gráficos.
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Métricas del día y de la jornada activa
// @Description  Las alertas de stock bajo solo se incluyen para admin.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	includeLowStock := GetRole(c) == entity.RoleAdmin
	out, err := h.uc.Dashboard(c.Context(), GetUserID(c), includeLowStock)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailySales godoc
// @Summary      Serie diaria de ingresos y ganancias (últimos 30 días)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DailySalesReport
// @Router       /api/reports/daily-sales [get]
func (h *ReportsHandler) DailySales(c *fiber.Ctx) error {
	out, err := h.uc.DailySales(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByEmployee godoc
// @Summary      Ingresos y ganancias por empleado del mes en curso
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EmployeeSalesReport
// @Router       /api/reports/sales-by-employee [get]
func (h *ReportsHandler) SalesByEmployee(c *fiber.Ctx) error {
	out, err := h.uc.SalesByEmployee(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos del mes por unidades
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopProductsReport
// @Router       /api/reports/top-products [get]
func (h *ReportsHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
