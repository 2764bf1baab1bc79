package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// UseCase dashboard en tiempo real y reportes para gráficos.
type UseCase struct {
	reportsRepo repository.ReportsRepository
	shiftRepo   repository.ShiftRepository
	productRepo repository.ProductRepository
}

// NewUseCase crea el caso de uso de reportes.
func NewUseCase(
	reportsRepo repository.ReportsRepository,
	shiftRepo repository.ShiftRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{reportsRepo: reportsRepo, shiftRepo: shiftRepo, productRepo: productRepo}
}

// Dashboard métricas del día y de la jornada activa del operador. Las alertas
// de stock bajo se incluyen solo si el llamador las pide (capa HTTP, según rol).
func (uc *UseCase) Dashboard(ctx context.Context, userID string, includeLowStock bool) (*dto.DashboardResponse, error) {
	today, err := uc.reportsRepo.TodayTotals()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TodayRevenue:    today.Revenue,
		TodayMargin:     today.Margin,
		TopProductToday: "N/A",
	}

	shift, err := uc.shiftRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if shift != nil {
		resp.HasActiveShift = true
		resp.ActiveShiftID = shift.ID

		mine, err := uc.reportsRepo.ShiftTotals(shift.ID)
		if err != nil {
			return nil, err
		}
		resp.MyShiftRevenue = mine.Revenue
		resp.MyShiftMargin = mine.Margin
	}

	active, err := uc.shiftRepo.CountActive()
	if err != nil {
		return nil, err
	}
	resp.ActiveShifts = active

	top, err := uc.reportsRepo.TopProductToday()
	if err != nil {
		return nil, err
	}
	if top != nil {
		resp.TopProductToday = top.Name
	}

	if includeLowStock {
		lowStock, err := uc.productRepo.ListLowStock()
		if err != nil {
			return nil, err
		}
		for _, p := range lowStock {
			resp.LowStockProducts = append(resp.LowStockProducts, dto.ProductResponse{
				ID:        p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Cost:      p.Cost,
				Stock:     p.Stock,
				MinStock:  p.MinStock,
				LowStock:  true,
				UpdatedAt: p.UpdatedAt,
			})
		}
	}
	return resp, nil
}

// DailySales serie de los últimos 30 días para el gráfico de ventas.
func (uc *UseCase) DailySales(ctx context.Context) (*dto.DailySalesReport, error) {
	rows, err := uc.reportsRepo.DailySales(30)
	if err != nil {
		return nil, err
	}

	report := &dto.DailySalesReport{}
	for _, r := range rows {
		report.Labels = append(report.Labels, r.Day.Format("02/01"))
		report.Revenue = append(report.Revenue, r.Revenue)
		report.Margin = append(report.Margin, r.Margin)
	}
	return report, nil
}

// SalesByEmployee ingresos y ganancia por operador del mes en curso.
func (uc *UseCase) SalesByEmployee(ctx context.Context) (*dto.EmployeeSalesReport, error) {
	rows, err := uc.reportsRepo.SalesByEmployeeMonth(time.Now())
	if err != nil {
		return nil, err
	}

	report := &dto.EmployeeSalesReport{}
	for _, r := range rows {
		report.Labels = append(report.Labels, r.Username)
		report.Revenue = append(report.Revenue, r.Revenue)
		report.Margin = append(report.Margin, r.Margin)
	}
	return report, nil
}

// TopProducts los 5 productos más vendidos del mes por unidades.
func (uc *UseCase) TopProducts(ctx context.Context) (*dto.TopProductsReport, error) {
	rows, err := uc.reportsRepo.TopProductsMonth(time.Now(), 5)
	if err != nil {
		return nil, err
	}

	report := &dto.TopProductsReport{}
	for _, r := range rows {
		report.Labels = append(report.Labels, r.Name)
		report.Units = append(report.Units, r.Units)
	}
	return report, nil
}
