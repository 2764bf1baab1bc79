package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/auth"
	"github.com/jhoicas/Caja-api/internal/application/catalog"
	"github.com/jhoicas/Caja-api/internal/application/reports"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/application/shifts"
	"github.com/jhoicas/Caja-api/internal/application/stock"
	"github.com/jhoicas/Caja-api/internal/application/users"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	UsersUC    *users.UseCase
	ProductUC  *catalog.ProductUseCase
	ClientUC   *catalog.ClientUseCase
	StockUC    *stock.UseCase
	CreateSale *sales.CreateSaleUseCase
	VoidSale   *sales.VoidSaleUseCase
	SaleQuery  *sales.QueryUseCase
	ShiftUC    *shifts.UseCase
	ReportsUC  *reports.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; register gatea el bootstrap del primer admin por sí mismo)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTSecret)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UsersUC)
	usersGroup := protected.Group("/users", adminOnly)
	usersGroup.Get("/", userHandler.List)
	usersGroup.Post("/:id/toggle-active", userHandler.ToggleActive)
	usersGroup.Post("/:id/toggle-role", userHandler.ToggleRole)
	usersGroup.Post("/:id/reset-password", userHandler.ResetPassword)

	// Products (lectura para todos; escritura solo admin)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Clients
	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.Profile)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	// Stock (ajustes y auditoría de movimientos solo admin)
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/adjustments", adminOnly, stockHandler.Adjust)
	stockGroup.Get("/movements", adminOnly, stockHandler.Movements)

	// Sales (historial completo y anulación solo admin; el comprobante valida
	// dueño-o-admin dentro del caso de uso)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.VoidSale, deps.SaleQuery)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", adminOnly, saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/:id/void", adminOnly, saleHandler.Void)

	// Shifts
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shiftsGroup := protected.Group("/shifts")
	shiftsGroup.Post("/open", shiftHandler.Open)
	shiftsGroup.Get("/active", shiftHandler.Active)
	shiftsGroup.Get("/expected", shiftHandler.ExpectedTotals)
	shiftsGroup.Post("/close", shiftHandler.Close)
	shiftsGroup.Get("/history", shiftHandler.History)

	// Reports
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/dashboard", reportsHandler.Dashboard)
	reportsGroup.Get("/daily-sales", adminOnly, reportsHandler.DailySales)
	reportsGroup.Get("/sales-by-employee", adminOnly, reportsHandler.SalesByEmployee)
	reportsGroup.Get("/top-products", adminOnly, reportsHandler.TopProducts)
}
