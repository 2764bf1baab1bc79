package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/stock"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// CreateSaleUseCase registra ventas descontando stock de forma atómica.
type CreateSaleUseCase struct {
	txRunner  TxRunner
	shiftRepo repository.ShiftRepository
}

// NewCreateSaleUseCase crea el caso de uso de registro de ventas.
func NewCreateSaleUseCase(txRunner TxRunner, shiftRepo repository.ShiftRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, shiftRepo: shiftRepo}
}

// Execute valida y registra una venta. Dentro de una sola transacción bloquea
// cada producto, verifica stock, congela precio y costo unitario en las líneas
// y descuenta stock dejando un movimiento de tipo venta por línea. Si algún
// producto no alcanza, nada se escribe.
func (uc *CreateSaleUseCase) Execute(ctx context.Context, userID string, req dto.CreateSaleRequest) (*dto.SaleCreatedResponse, error) {
	method := entity.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	// Las cantidades no positivas se descartan antes de validar el resto.
	lines := make([]dto.SaleLineRequest, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Quantity > 0 && l.ProductID != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyLines
	}

	// Toda venta queda amarrada a la jornada activa del operador.
	shift, err := uc.shiftRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNoActiveShift
	}
	if req.ShiftID != "" && req.ShiftID != shift.ID {
		return nil, domain.ErrNoActiveShift
	}

	now := time.Now()
	saleID := uuid.New().String()
	var resp *dto.SaleCreatedResponse

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		shiftRepo repository.ShiftRepository,
	) error {
		// Bloquear la jornada y revalidarla dentro de la transacción: un
		// cierre concurrente toma el mismo lock, así que la venta entra al
		// arqueo o se rechaza, nunca queda fuera de él.
		locked, err := shiftRepo.GetForUpdate(shift.ID)
		if err != nil {
			return err
		}
		if locked == nil || !locked.Active {
			return domain.ErrNoActiveShift
		}

		// Primera pasada: bloquear productos, validar stock acumulado por
		// producto (la misma venta puede repetir producto en varias líneas)
		// y calcular totales con los precios vigentes.
		products := make(map[string]*entity.Product, len(lines))
		consumed := make(map[string]int, len(lines))
		total := decimal.Zero
		margin := decimal.Zero

		for _, l := range lines {
			product, ok := products[l.ProductID]
			if !ok {
				var err error
				product, err = productRepo.GetForUpdate(l.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				products[l.ProductID] = product
			}

			consumed[l.ProductID] += l.Quantity
			if consumed[l.ProductID] > product.Stock {
				return domain.ErrInsufficientStock
			}

			qty := decimal.NewFromInt(int64(l.Quantity))
			total = total.Add(product.Price.Mul(qty))
			margin = margin.Add(product.Price.Sub(product.Cost).Mul(qty))
		}

		sale := &entity.Sale{
			ID:            saleID,
			Date:          now,
			Total:         total,
			GrossMargin:   margin,
			Status:        entity.SaleStatusCompleted,
			PaymentMethod: method,
			UserID:        userID,
			ShiftID:       shift.ID,
		}
		if req.ClientID != "" {
			clientID := req.ClientID
			sale.ClientID = &clientID
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// Segunda pasada: líneas con precio y costo congelados, más el
		// descuento de stock con su movimiento de auditoría.
		for _, l := range lines {
			product := products[l.ProductID]

			line := &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: product.ID,
				Quantity:  l.Quantity,
				UnitPrice: product.Price,
				UnitCost:  product.Cost,
			}
			if err := saleRepo.CreateLine(line); err != nil {
				return err
			}

			if _, err := stock.ApplyMovement(productRepo, movementRepo, product,
				-l.Quantity, entity.MovementSale, "", userID, now); err != nil {
				return err
			}
		}

		resp = &dto.SaleCreatedResponse{SaleID: saleID, Total: total, GrossMargin: margin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
