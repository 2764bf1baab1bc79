package dto

import "github.com/shopspring/decimal"

// DashboardResponse analítica en tiempo real de la pantalla de inicio.
type DashboardResponse struct {
	TodayRevenue     decimal.Decimal   `json:"today_revenue"`
	TodayMargin      decimal.Decimal   `json:"today_margin"`
	MyShiftRevenue   decimal.Decimal   `json:"my_shift_revenue"`
	MyShiftMargin    decimal.Decimal   `json:"my_shift_margin"`
	ActiveShifts     int               `json:"active_shifts"`
	TopProductToday  string            `json:"top_product_today"` // "N/A" si no hubo ventas
	HasActiveShift   bool              `json:"has_active_shift"`
	ActiveShiftID    string            `json:"active_shift_id,omitempty"`
	LowStockProducts []ProductResponse `json:"low_stock_products,omitempty"` // solo admin
}

// DailySalesReport serie diaria de ingresos y ganancias (gráfico 30 días).
type DailySalesReport struct {
	Labels  []string          `json:"labels"` // dd/mm
	Revenue []decimal.Decimal `json:"revenue"`
	Margin  []decimal.Decimal `json:"margin"`
}

// EmployeeSalesReport ingresos y ganancias por empleado del mes en curso.
type EmployeeSalesReport struct {
	Labels  []string          `json:"labels"` // usernames
	Revenue []decimal.Decimal `json:"revenue"`
	Margin  []decimal.Decimal `json:"margin"`
}

// TopProductsReport productos más vendidos del mes por unidades.
type TopProductsReport struct {
	Labels []string `json:"labels"`
	Units  []int    `json:"units"`
}
