package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Los repositorios fake copian las entidades al leer y escriben sobre el mapa
// al confirmar, igual que una fila de base de datos. El fakeTxRunner toma un
// snapshot antes de ejecutar fn y lo restaura si fn falla, simulando el
// rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		repo.products[p.ID] = &cp
	}
	return repo
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.GetForUpdate(id)
}

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) UpdateStock(id string, stock int) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (f *fakeProductRepo) stockOf(id string) int {
	return f.products[id].Stock
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

type fakeSaleRepo struct {
	repository.SaleRepository
	sales map[string]*entity.Sale
	lines map[string][]*entity.SaleLine
	// staleStatus fuerza que la próxima lectura de esa venta devuelva un
	// estado desfasado, como la ve una transacción que leyó antes de que
	// otra confirmara.
	staleStatus map[string]string
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales: make(map[string]*entity.Sale),
		lines: make(map[string][]*entity.SaleLine),
	}
}

func (f *fakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	f.sales[s.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) CreateLine(l *entity.SaleLine) error {
	cp := *l
	f.lines[l.SaleID] = append(f.lines[l.SaleID], &cp)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	if stale, ok := f.staleStatus[id]; ok {
		cp.Status = stale
		delete(f.staleStatus, id)
	}
	return &cp, nil
}

func (f *fakeSaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) {
	return f.lines[saleID], nil
}

// MarkVoided replica la semántica del UPDATE condicional: solo pasa de
// completada a anulada; si otra transacción ganó, cero filas afectadas.
func (f *fakeSaleRepo) MarkVoided(id string) error {
	s, ok := f.sales[id]
	if !ok || s.Status != entity.SaleStatusCompleted {
		return domain.ErrAlreadyVoided
	}
	s.Status = entity.SaleStatusVoided
	return nil
}

type fakeShiftRepo struct {
	repository.ShiftRepository
	active *entity.Shift
	// closedUnderLock simula un cierre rival que confirmó primero: la fila
	// bloqueada ya se ve inactiva aunque la lectura previa la vio activa.
	closedUnderLock bool
}

func (f *fakeShiftRepo) GetActiveByUser(userID string) (*entity.Shift, error) {
	if f.active != nil && f.active.UserID == userID && f.active.Active {
		cp := *f.active
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeShiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	if f.active == nil || f.active.ID != id {
		return nil, nil
	}
	cp := *f.active
	if f.closedUnderLock {
		cp.Active = false
	}
	return &cp, nil
}

type fakeTxRunner struct {
	saleRepo     *fakeSaleRepo
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
	shiftRepo    *fakeShiftRepo
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	shiftRepo repository.ShiftRepository,
) error) error {
	stocks := make(map[string]int, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		stocks[id] = p.Stock
	}
	statuses := make(map[string]string, len(r.saleRepo.sales))
	for id, s := range r.saleRepo.sales {
		statuses[id] = s.Status
	}
	movementCount := len(r.movementRepo.movements)

	err := fn(r.saleRepo, r.productRepo, r.movementRepo, r.shiftRepo)
	if err == nil {
		return nil
	}

	// Rollback: stocks, estados y todo lo insertado durante fn.
	for id, stock := range stocks {
		r.productRepo.products[id].Stock = stock
	}
	for id := range r.saleRepo.sales {
		if _, existed := statuses[id]; !existed {
			delete(r.saleRepo.sales, id)
			delete(r.saleRepo.lines, id)
		}
	}
	for id, status := range statuses {
		r.saleRepo.sales[id].Status = status
	}
	r.movementRepo.movements = r.movementRepo.movements[:movementCount]
	return err
}

// ── helpers ───────────────────────────────────────────────────────────────────

const (
	testSellerID = "00000000-0000-0000-0000-0000000000aa"
	testShiftID  = "00000000-0000-0000-0000-0000000000ff"
)

func buildProduct(id, name string, price, cost float64, stock int) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Cost:     decimal.NewFromFloat(cost),
		Stock:    stock,
		MinStock: 1,
	}
}

func buildSaleEnv(products ...*entity.Product) (*sales.CreateSaleUseCase, *fakeTxRunner, *fakeShiftRepo) {
	shiftRepo := &fakeShiftRepo{active: &entity.Shift{
		ID:        testShiftID,
		UserID:    testSellerID,
		StartedAt: time.Now(),
		Active:    true,
	}}
	runner := &fakeTxRunner{
		saleRepo:     newFakeSaleRepo(),
		productRepo:  newFakeProductRepo(products...),
		movementRepo: &fakeMovementRepo{},
		shiftRepo:    shiftRepo,
	}
	return sales.NewCreateSaleUseCase(runner, shiftRepo), runner, shiftRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYCalculaTotales(t *testing.T) {
	uc, runner, _ := buildSaleEnv(
		buildProduct("p1", "Café 500g", 10, 6, 5),
		buildProduct("p2", "Azúcar 1kg", 4, 3, 10),
	)

	resp, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	require.NoError(t, err)

	// total = 2*10 + 3*4 = 32; ganancia = 2*(10-6) + 3*(4-3) = 11
	assert.True(t, decimal.NewFromInt(32).Equal(resp.Total), "total esperado 32, fue %s", resp.Total)
	assert.True(t, decimal.NewFromInt(11).Equal(resp.GrossMargin), "ganancia esperada 11, fue %s", resp.GrossMargin)

	assert.Equal(t, 3, runner.productRepo.stockOf("p1"), "stock de p1 debe bajar de 5 a 3")
	assert.Equal(t, 7, runner.productRepo.stockOf("p2"), "stock de p2 debe bajar de 10 a 7")

	sale := runner.saleRepo.sales[resp.SaleID]
	require.NotNil(t, sale, "la venta debe quedar persistida")
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, testShiftID, sale.ShiftID, "la venta queda amarrada a la jornada activa")

	// Un movimiento de venta por línea, con delta negativo.
	require.Len(t, runner.movementRepo.movements, 2)
	for _, m := range runner.movementRepo.movements {
		assert.Equal(t, entity.MovementSale, m.Kind)
		assert.Negative(t, m.Quantity, "el movimiento de venta descuenta stock")
		assert.Equal(t, testSellerID, m.UserID)
	}
}

func TestCreateSale_CongelaPrecioYCostoEnLineas(t *testing.T) {
	uc, runner, _ := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	resp, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentDebitCard),
		Lines:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	lines := runner.saleRepo.lines[resp.SaleID]
	require.Len(t, lines, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(lines[0].UnitPrice),
		"el precio unitario queda congelado al precio vigente")
	assert.True(t, decimal.NewFromInt(6).Equal(lines[0].UnitCost),
		"el costo unitario queda congelado al costo vigente")
}

func TestCreateSale_StockInsuficiente_NoEscribeNada(t *testing.T) {
	uc, runner, _ := buildSaleEnv(
		buildProduct("p1", "Café 500g", 10, 6, 5),
		buildProduct("p2", "Azúcar 1kg", 4, 3, 2),
	)

	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3}, // solo hay 2
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada escrito: ni venta, ni líneas, ni movimientos, ni stock tocado.
	assert.Empty(t, runner.saleRepo.sales, "no debe quedar venta persistida")
	assert.Empty(t, runner.movementRepo.movements, "no debe quedar movimiento persistido")
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"), "el stock de p1 no debe cambiar")
	assert.Equal(t, 2, runner.productRepo.stockOf("p2"), "el stock de p2 no debe cambiar")
}

func TestCreateSale_ProductoRepetido_AcumulaCantidades(t *testing.T) {
	uc, runner, _ := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	// 3 + 4 = 7 unidades del mismo producto sobre 5 de stock: cada línea
	// pasa por separado pero el acumulado no alcanza.
	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 4},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"))

	// 3 + 2 = 5 sí alcanza y deja el stock en cero.
	_, err = uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, runner.productRepo.stockOf("p1"))
}

func TestCreateSale_MetodoPagoInvalido(t *testing.T) {
	uc, _, _ := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: "bitcoin",
		Lines:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
}

func TestCreateSale_SinLineasValidas(t *testing.T) {
	uc, _, _ := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	// Cantidades cero y negativas se descartan; no queda nada que vender.
	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 0},
			{ProductID: "p1", Quantity: -2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyLines)
}

func TestCreateSale_SinJornadaActiva(t *testing.T) {
	uc, _, shiftRepo := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))
	shiftRepo.active = nil

	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNoActiveShift)
}

func TestCreateSale_JornadaDeclaradaNoCoincide(t *testing.T) {
	uc, _, _ := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		ShiftID:       "otra-jornada",
		PaymentMethod: string(entity.PaymentCash),
		Lines:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNoActiveShift)
}

func TestCreateSale_JornadaCerradaAlBloquear(t *testing.T) {
	uc, runner, shiftRepo := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	// La jornada pasó la validación previa, pero el cierre del operador
	// confirmó antes de que la venta bloqueara la fila de la jornada.
	shiftRepo.closedUnderLock = true

	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNoActiveShift)

	// La venta no puede colarse en una jornada ya arqueada: nada escrito.
	assert.Empty(t, runner.saleRepo.sales)
	assert.Empty(t, runner.movementRepo.movements)
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"))
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	uc, runner, _ := buildSaleEnv(buildProduct("p1", "Café 500g", 10, 6, 5))

	_, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "no-existe", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"), "el rollback no debe dejar descuentos parciales")
}
