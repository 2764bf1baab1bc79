package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests VoidSale
//
// Reutilizan los fakes de create_sale_test.go: primero se registra una venta
// real con el caso de uso de creación y luego se anula.
// ──────────────────────────────────────────────────────────────────────────────

func createSaleForVoid(t *testing.T, uc *sales.CreateSaleUseCase) *dto.SaleCreatedResponse {
	t.Helper()
	resp, err := uc.Execute(context.Background(), testSellerID, dto.CreateSaleRequest{
		PaymentMethod: string(entity.PaymentCash),
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestVoidSale_ReponeStockYConservaTotales(t *testing.T) {
	createUC, runner, _ := buildSaleEnv(
		buildProduct("p1", "Café 500g", 10, 6, 5),
		buildProduct("p2", "Azúcar 1kg", 4, 3, 10),
	)
	created := createSaleForVoid(t, createUC)

	voidUC := sales.NewVoidSaleUseCase(runner)
	require.NoError(t, voidUC.Execute(context.Background(), testSellerID, created.SaleID))

	// El stock vuelve exactamente a su nivel previo a la venta.
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"))
	assert.Equal(t, 10, runner.productRepo.stockOf("p2"))

	sale := runner.saleRepo.sales[created.SaleID]
	assert.Equal(t, entity.SaleStatusVoided, sale.Status)
	// Total y ganancia no se tocan: el estado es lo que excluye la venta
	// de los reportes.
	assert.True(t, decimal.NewFromInt(32).Equal(sale.Total),
		"el total de la venta anulada debe conservarse, fue %s", sale.Total)
	assert.True(t, decimal.NewFromInt(11).Equal(sale.GrossMargin))

	// 2 movimientos de venta + 2 de anulación con delta positivo.
	require.Len(t, runner.movementRepo.movements, 4)
	voids := 0
	for _, m := range runner.movementRepo.movements {
		if m.Kind == entity.MovementSaleVoid {
			voids++
			assert.Positive(t, m.Quantity, "la anulación repone stock")
		}
	}
	assert.Equal(t, 2, voids, "debe quedar un movimiento de anulación por línea")
}

func TestVoidSale_YaAnulada(t *testing.T) {
	createUC, runner, _ := buildSaleEnv(
		buildProduct("p1", "Café 500g", 10, 6, 5),
		buildProduct("p2", "Azúcar 1kg", 4, 3, 10),
	)
	created := createSaleForVoid(t, createUC)

	voidUC := sales.NewVoidSaleUseCase(runner)
	require.NoError(t, voidUC.Execute(context.Background(), testSellerID, created.SaleID))

	// La segunda anulación se rechaza y no vuelve a reponer stock.
	err := voidUC.Execute(context.Background(), testSellerID, created.SaleID)
	require.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"), "el stock no debe reponerse dos veces")
	assert.Len(t, runner.movementRepo.movements, 4)
}

func TestVoidSale_AnulacionRival_NoReponeDosVeces(t *testing.T) {
	createUC, runner, _ := buildSaleEnv(
		buildProduct("p1", "Café 500g", 10, 6, 5),
		buildProduct("p2", "Azúcar 1kg", 4, 3, 10),
	)
	created := createSaleForVoid(t, createUC)

	voidUC := sales.NewVoidSaleUseCase(runner)
	require.NoError(t, voidUC.Execute(context.Background(), testSellerID, created.SaleID))

	// Una anulación rival leyó la venta como completada antes de que la
	// primera confirmara: su lectura quedó desfasada y el chequeo en memoria
	// no la corta. El cambio de estado condicional sí.
	runner.saleRepo.staleStatus = map[string]string{
		created.SaleID: entity.SaleStatusCompleted,
	}

	err := voidUC.Execute(context.Background(), testSellerID, created.SaleID)
	require.ErrorIs(t, err, domain.ErrAlreadyVoided)

	// El stock se repuso exactamente una vez y no hay movimientos extra.
	assert.Equal(t, 5, runner.productRepo.stockOf("p1"))
	assert.Equal(t, 10, runner.productRepo.stockOf("p2"))
	assert.Len(t, runner.movementRepo.movements, 4)
	assert.Equal(t, entity.SaleStatusVoided, runner.saleRepo.sales[created.SaleID].Status)
}

func TestVoidSale_VentaInexistente(t *testing.T) {
	_, runner, _ := buildSaleEnv()
	voidUC := sales.NewVoidSaleUseCase(runner)

	err := voidUC.Execute(context.Background(), testSellerID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoidSale_ProductoEliminado_AbortaCompleta(t *testing.T) {
	createUC, runner, _ := buildSaleEnv(
		buildProduct("p1", "Café 500g", 10, 6, 5),
		buildProduct("p2", "Azúcar 1kg", 4, 3, 10),
	)
	created := createSaleForVoid(t, createUC)

	// Uno de los productos vendidos desaparece del catálogo.
	delete(runner.productRepo.products, "p2")

	voidUC := sales.NewVoidSaleUseCase(runner)
	err := voidUC.Execute(context.Background(), testSellerID, created.SaleID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// La anulación entera se aborta: la venta sigue completada y el stock
	// del producto restante no se repuso.
	sale := runner.saleRepo.sales[created.SaleID]
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, 3, runner.productRepo.stockOf("p1"))
}
