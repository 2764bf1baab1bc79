package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios que una
// venta necesita tocar de forma atómica: cabecera y líneas, stock de productos,
// movimientos de auditoría y la jornada (cuya fila se bloquea para serializar
// ventas contra el cierre).
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		shiftRepo repository.ShiftRepository,
	) error) error
}

// ReceiptLine línea renderizable del comprobante.
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// ReceiptData todo lo que el generador necesita para armar el comprobante.
type ReceiptData struct {
	StoreName    string
	StoreAddress string
	StorePhone   string
	Sale         *entity.Sale
	Lines        []ReceiptLine
	Username     string
	ClientName   string
}

// ReceiptGenerator renderiza el comprobante de una venta como PDF.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
