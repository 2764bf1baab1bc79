package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewProductUseCase crea el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, saleRepo: saleRepo}
}

// Create da de alta un producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateProduct(name, req); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update edita nombre, precios y umbral. El stock solo cambia por ventas,
// anulaciones y ajustes de inventario.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateProduct(name, dto.CreateProductRequest{
		Price: req.Price, Cost: req.Cost, MinStock: req.MinStock,
	}); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.Name = name
	product.Description = req.Description
	product.Price = req.Price
	product.Cost = req.Cost
	product.MinStock = req.MinStock
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get producto por id.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List catálogo paginado con búsqueda por nombre.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, *toProductResponse(p))
	}
	return resp, nil
}

// ListLowStock productos en o bajo su umbral mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, *toProductResponse(p))
	}
	return resp, nil
}

// Delete elimina un producto sin historial. Un producto con ventas asociadas
// no se borra: perdería el historial de líneas que lo referencian.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	count, err := uc.saleRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProductHasSales
	}

	return uc.productRepo.Delete(id)
}

// validateProduct reglas compartidas de alta y edición: nombre obligatorio,
// precio positivo, costo no negativo y nunca mayor al precio.
func validateProduct(name string, req dto.CreateProductRequest) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	if !req.Price.IsPositive() {
		return domain.ErrInvalidInput
	}
	if req.Cost.IsNegative() || req.Cost.GreaterThan(req.Price) {
		return domain.ErrInvalidInput
	}
	if req.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		LowStock:    p.LowStock(),
		UpdatedAt:   p.UpdatedAt,
	}
}
