package sales

import (
	"context"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// StoreInfo datos del comercio impresos en el comprobante.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// QueryUseCase lecturas de ventas: historial, detalle y comprobante PDF.
type QueryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	clientRepo  repository.ClientRepository
	receipts    ReceiptGenerator
	store       StoreInfo
}

// NewQueryUseCase crea el caso de uso de consulta de ventas.
func NewQueryUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	receipts ReceiptGenerator,
	store StoreInfo,
) *QueryUseCase {
	return &QueryUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		clientRepo:  clientRepo,
		receipts:    receipts,
		store:       store,
	}
}

// List historial de ventas paginado, más reciente primero.
func (uc *QueryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, toSaleResponse(s, nil))
	}
	return resp, nil
}

// Get detalle de una venta con sus líneas.
func (uc *QueryUseCase) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	lines, err := uc.saleRepo.GetLines(saleID)
	if err != nil {
		return nil, err
	}

	resp := toSaleResponse(sale, lines)
	return &resp, nil
}

// Receipt genera el comprobante PDF de una venta. Solo el operador que la
// registró puede verlo, salvo que el llamador tenga visibilidad total
// (decisión que toma la capa HTTP según el rol).
func (uc *QueryUseCase) Receipt(ctx context.Context, saleID, requesterID string, viewAll bool) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !viewAll && sale.UserID != requesterID {
		return nil, domain.ErrForbidden
	}

	lines, err := uc.saleRepo.GetLines(saleID)
	if err != nil {
		return nil, err
	}

	receiptLines := make([]ReceiptLine, 0, len(lines))
	for _, line := range lines {
		name := "Producto eliminado"
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			name = product.Name
		}
		receiptLines = append(receiptLines, ReceiptLine{
			Name:      name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Revenue(),
		})
	}

	username := ""
	if seller, err := uc.userRepo.GetByID(sale.UserID); err == nil && seller != nil {
		username = seller.Username
	}

	clientName := "Consumidor final"
	if sale.ClientID != nil {
		client, err := uc.clientRepo.GetByID(*sale.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			clientName = client.Name
		}
	}

	return uc.receipts.GenerateReceiptPDF(ctx, ReceiptData{
		StoreName:    uc.store.Name,
		StoreAddress: uc.store.Address,
		StorePhone:   uc.store.Phone,
		Sale:         sale,
		Lines:        receiptLines,
		Username:     username,
		ClientName:   clientName,
	})
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            sale.ID,
		Date:          sale.Date,
		Total:         sale.Total,
		GrossMargin:   sale.GrossMargin,
		Status:        sale.Status,
		PaymentMethod: string(sale.PaymentMethod),
		UserID:        sale.UserID,
		ShiftID:       sale.ShiftID,
	}
	if sale.ClientID != nil {
		resp.ClientID = *sale.ClientID
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			UnitCost:  line.UnitCost,
			Subtotal:  line.Revenue(),
		})
	}
	return resp
}
