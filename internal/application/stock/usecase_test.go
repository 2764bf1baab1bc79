package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/stock"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) UpdateStock(id string, stockLevel int) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stockLevel
	return nil
}

type fakeMovementRepo struct {
	repository.StockMovementRepository
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTxRunner struct {
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	stocks := make(map[string]int, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		stocks[id] = p.Stock
	}
	movementCount := len(r.movementRepo.movements)

	err := fn(r.productRepo, r.movementRepo)
	if err == nil {
		return nil
	}
	for id, s := range stocks {
		r.productRepo.products[id].Stock = s
	}
	r.movementRepo.movements = r.movementRepo.movements[:movementCount]
	return err
}

// ── helpers ───────────────────────────────────────────────────────────────────

const testAdjusterID = "00000000-0000-0000-0000-0000000000cc"

func buildStockEnv(products ...*entity.Product) (*stock.UseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{
		productRepo:  &fakeProductRepo{products: make(map[string]*entity.Product)},
		movementRepo: &fakeMovementRepo{},
	}
	for _, p := range products {
		cp := *p
		runner.productRepo.products[p.ID] = &cp
	}
	return stock.NewUseCase(runner, runner.movementRepo), runner
}

func testProduct(id string, stockLevel, minStock int) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     "Producto " + id,
		Price:    decimal.NewFromInt(10),
		Cost:     decimal.NewFromInt(6),
		Stock:    stockLevel,
		MinStock: minStock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ajuste manual
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EntradaDeMercaderia(t *testing.T) {
	uc, runner := buildStockEnv(testProduct("p1", 5, 2))

	resp, err := uc.Adjust(context.Background(), testAdjusterID, dto.AdjustStockRequest{
		ProductID: "p1",
		Quantity:  10,
		Reason:    "compra a proveedor",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.NewStock)
	assert.False(t, resp.LowStock)
	assert.Equal(t, 15, runner.productRepo.products["p1"].Stock)

	require.Len(t, runner.movementRepo.movements, 1)
	m := runner.movementRepo.movements[0]
	assert.Equal(t, entity.MovementAdjustment, m.Kind)
	assert.Equal(t, 10, m.Quantity)
	assert.Equal(t, "compra a proveedor", m.Reason)
	assert.Equal(t, testAdjusterID, m.UserID)
}

func TestAdjust_MermaDejaStockBajo(t *testing.T) {
	uc, _ := buildStockEnv(testProduct("p1", 5, 3))

	resp, err := uc.Adjust(context.Background(), testAdjusterID, dto.AdjustStockRequest{
		ProductID: "p1",
		Quantity:  -3,
		Reason:    "rotura en bodega",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.NewStock)
	assert.True(t, resp.LowStock, "2 <= umbral 3 debe marcar stock bajo")
}

func TestAdjust_NoPermiteStockNegativo(t *testing.T) {
	uc, runner := buildStockEnv(testProduct("p1", 5, 2))

	_, err := uc.Adjust(context.Background(), testAdjusterID, dto.AdjustStockRequest{
		ProductID: "p1",
		Quantity:  -6,
		Reason:    "merma",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, runner.productRepo.products["p1"].Stock, "el stock no debe cambiar")
	assert.Empty(t, runner.movementRepo.movements, "no debe quedar movimiento")
}

func TestAdjust_ValidaEntrada(t *testing.T) {
	uc, _ := buildStockEnv(testProduct("p1", 5, 2))

	cases := []struct {
		name string
		req  dto.AdjustStockRequest
	}{
		{"delta cero", dto.AdjustStockRequest{ProductID: "p1", Quantity: 0, Reason: "x"}},
		{"sin motivo", dto.AdjustStockRequest{ProductID: "p1", Quantity: 1, Reason: "   "}},
		{"sin producto", dto.AdjustStockRequest{Quantity: 1, Reason: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Adjust(context.Background(), testAdjusterID, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	uc, _ := buildStockEnv()

	_, err := uc.Adjust(context.Background(), testAdjusterID, dto.AdjustStockRequest{
		ProductID: "no-existe",
		Quantity:  1,
		Reason:    "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests reporte de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_FiltraPorProductoYTipo(t *testing.T) {
	uc, runner := buildStockEnv(testProduct("p1", 10, 2), testProduct("p2", 10, 2))

	_, err := uc.Adjust(context.Background(), testAdjusterID, dto.AdjustStockRequest{
		ProductID: "p1", Quantity: 5, Reason: "compra",
	})
	require.NoError(t, err)
	_, err = uc.Adjust(context.Background(), testAdjusterID, dto.AdjustStockRequest{
		ProductID: "p2", Quantity: -1, Reason: "merma",
	})
	require.NoError(t, err)
	require.Len(t, runner.movementRepo.movements, 2)

	got, err := uc.Movements(context.Background(), repository.MovementFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ProductID)
	assert.Equal(t, string(entity.MovementAdjustment), got[0].Kind)
}

func TestMovements_TipoInvalido(t *testing.T) {
	uc, _ := buildStockEnv()

	_, err := uc.Movements(context.Background(), repository.MovementFilter{Kind: "teletransporte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
