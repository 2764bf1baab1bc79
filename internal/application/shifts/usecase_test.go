package shifts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/shifts"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeShiftRepo struct {
	repository.ShiftRepository
	shifts map[string]*entity.Shift
	// closedUnderLock simula un cierre rival que confirmó primero: la fila
	// bloqueada ya se ve inactiva aunque la lectura previa la vio activa.
	closedUnderLock bool
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]*entity.Shift)}
}

func (f *fakeShiftRepo) Create(s *entity.Shift) error {
	// Índice único parcial: una sola jornada activa por operador.
	for _, existing := range f.shifts {
		if existing.UserID == s.UserID && existing.Active {
			return domain.ErrShiftAlreadyOpen
		}
	}
	cp := *s
	f.shifts[s.ID] = &cp
	return nil
}

func (f *fakeShiftRepo) GetActiveByUser(userID string) (*entity.Shift, error) {
	for _, s := range f.shifts {
		if s.UserID == userID && s.Active {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeShiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	if f.closedUnderLock {
		cp.Active = false
	}
	return &cp, nil
}

func (f *fakeShiftRepo) Close(id string, endedAt time.Time, notes string) error {
	s, ok := f.shifts[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = false
	s.EndedAt = &endedAt
	s.ClosingNotes = notes
	return nil
}

func (f *fakeShiftRepo) ListClosed(filter repository.ShiftHistoryFilter) ([]*entity.Shift, error) {
	var out []*entity.Shift
	for _, s := range f.shifts {
		if s.Active {
			continue
		}
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeShiftRepo) CountActive() (int, error) {
	n := 0
	for _, s := range f.shifts {
		if s.Active {
			n++
		}
	}
	return n, nil
}

type fakeSaleTotalsRepo struct {
	repository.SaleRepository
	totals map[string]map[entity.PaymentMethod]decimal.Decimal // shiftID → método → total
}

func (f *fakeSaleTotalsRepo) TotalsByPaymentMethod(shiftID string) (map[entity.PaymentMethod]decimal.Decimal, error) {
	totals := f.totals[shiftID]
	if totals == nil {
		totals = map[entity.PaymentMethod]decimal.Decimal{}
	}
	return totals, nil
}

type fakeClosingRepo struct {
	repository.ClosingRepository
	closings []*entity.PaymentMethodClosing
}

func (f *fakeClosingRepo) Create(c *entity.PaymentMethodClosing) error {
	cp := *c
	f.closings = append(f.closings, &cp)
	return nil
}

func (f *fakeClosingRepo) ListByShift(shiftID string) ([]*entity.PaymentMethodClosing, error) {
	var out []*entity.PaymentMethodClosing
	for _, c := range f.closings {
		if c.ShiftID == shiftID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCloseTxRunner struct {
	saleRepo    *fakeSaleTotalsRepo
	shiftRepo   *fakeShiftRepo
	closingRepo *fakeClosingRepo
}

func (r *fakeCloseTxRunner) RunShiftClose(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	shiftRepo repository.ShiftRepository,
	closingRepo repository.ClosingRepository,
) error) error {
	return fn(r.saleRepo, r.shiftRepo, r.closingRepo)
}

// ── helpers ───────────────────────────────────────────────────────────────────

const testOperatorID = "00000000-0000-0000-0000-0000000000bb"

func buildShiftEnv() (*shifts.UseCase, *fakeCloseTxRunner) {
	runner := &fakeCloseTxRunner{
		saleRepo:    &fakeSaleTotalsRepo{totals: map[string]map[entity.PaymentMethod]decimal.Decimal{}},
		shiftRepo:   newFakeShiftRepo(),
		closingRepo: &fakeClosingRepo{},
	}
	uc := shifts.NewUseCase(runner, runner.shiftRepo, runner.saleRepo, runner.closingRepo)
	return uc, runner
}

func closingFor(t *testing.T, closings []dto.ClosingResponse, method entity.PaymentMethod) dto.ClosingResponse {
	t.Helper()
	for _, c := range closings {
		if c.Method == string(method) {
			return c
		}
	}
	t.Fatalf("no hay arqueo para el método %s", method)
	return dto.ClosingResponse{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests apertura
// ──────────────────────────────────────────────────────────────────────────────

func TestOpenShift_CreaJornadaActiva(t *testing.T) {
	uc, runner := buildShiftEnv()

	resp, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ShiftID)

	active, err := runner.shiftRepo.GetActiveByUser(testOperatorID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, resp.ShiftID, active.ID)
}

func TestOpenShift_SegundaAperturaRechazada(t *testing.T) {
	uc, _ := buildShiftEnv()

	_, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), testOperatorID)
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen,
		"un operador no puede tener dos jornadas activas")
}

func TestOpenShift_OperadoresDistintosNoSeBloquean(t *testing.T) {
	uc, _ := buildShiftEnv()

	_, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), "otro-operador")
	assert.NoError(t, err, "la jornada activa es por operador, no global")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests cierre con arqueo
// ──────────────────────────────────────────────────────────────────────────────

func TestCloseShift_ArqueoConFaltanteEnEfectivo(t *testing.T) {
	uc, runner := buildShiftEnv()
	opened, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	// Vendido: 100 en efectivo, 50 en débito.
	runner.saleRepo.totals[opened.ShiftID] = map[entity.PaymentMethod]decimal.Decimal{
		entity.PaymentCash:      decimal.NewFromInt(100),
		entity.PaymentDebitCard: decimal.NewFromInt(50),
	}

	// El operador cuenta 90 en efectivo y no declara el débito.
	resp, err := uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{
		Counted: map[string]decimal.Decimal{
			string(entity.PaymentCash): decimal.NewFromInt(90),
		},
		Notes: "faltó un billete",
	})
	require.NoError(t, err)
	require.Len(t, resp.Closings, 2, "un arqueo por método con ventas")

	cash := closingFor(t, resp.Closings, entity.PaymentCash)
	assert.True(t, decimal.NewFromInt(100).Equal(cash.Expected))
	assert.True(t, decimal.NewFromInt(90).Equal(cash.Counted))
	assert.True(t, decimal.NewFromInt(-10).Equal(cash.Variance),
		"diferencia = contado - esperado, fue %s", cash.Variance)

	// Método no declarado: contado 0, diferencia -esperado.
	debit := closingFor(t, resp.Closings, entity.PaymentDebitCard)
	assert.True(t, debit.Counted.IsZero(), "método ausente cuenta como 0")
	assert.True(t, decimal.NewFromInt(-50).Equal(debit.Variance))

	assert.Equal(t, dto.CashOutcomeShortage, resp.CashOutcome)
	assert.True(t, decimal.NewFromInt(-10).Equal(resp.CashVariance))

	// La jornada quedó cerrada con sus notas y los arqueos persistidos.
	active, err := runner.shiftRepo.GetActiveByUser(testOperatorID)
	require.NoError(t, err)
	assert.Nil(t, active, "la jornada no debe seguir activa")
	assert.Equal(t, "faltó un billete", runner.shiftRepo.shifts[opened.ShiftID].ClosingNotes)
	assert.Len(t, runner.closingRepo.closings, 2)
}

func TestCloseShift_SobranteEnEfectivo(t *testing.T) {
	uc, runner := buildShiftEnv()
	opened, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	runner.saleRepo.totals[opened.ShiftID] = map[entity.PaymentMethod]decimal.Decimal{
		entity.PaymentCash: decimal.NewFromInt(100),
	}

	resp, err := uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{
		Counted: map[string]decimal.Decimal{
			string(entity.PaymentCash): decimal.NewFromInt(105),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.CashOutcomeSurplus, resp.CashOutcome)
	assert.True(t, decimal.NewFromInt(5).Equal(resp.CashVariance))
}

func TestCloseShift_CajaCuadrada(t *testing.T) {
	uc, runner := buildShiftEnv()
	opened, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	runner.saleRepo.totals[opened.ShiftID] = map[entity.PaymentMethod]decimal.Decimal{
		entity.PaymentCash: decimal.NewFromFloat(123.45),
	}

	resp, err := uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{
		Counted: map[string]decimal.Decimal{
			string(entity.PaymentCash): decimal.NewFromFloat(123.45),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, dto.CashOutcomeBalanced, resp.CashOutcome)
	assert.True(t, resp.CashVariance.IsZero())
}

func TestCloseShift_SinVentas_CierraSinArqueos(t *testing.T) {
	uc, runner := buildShiftEnv()
	_, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	resp, err := uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{})
	require.NoError(t, err)

	assert.Empty(t, resp.Closings, "jornada sin ventas cierra sin arqueos")
	assert.Equal(t, dto.CashOutcomeBalanced, resp.CashOutcome)
	assert.Empty(t, runner.closingRepo.closings)

	active, err := runner.shiftRepo.GetActiveByUser(testOperatorID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCloseShift_SinJornadaActiva(t *testing.T) {
	uc, _ := buildShiftEnv()

	_, err := uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{})
	assert.ErrorIs(t, err, domain.ErrNoActiveShift)
}

func TestCloseShift_CierreRivalConfirmadoPrimero(t *testing.T) {
	uc, runner := buildShiftEnv()
	opened, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	runner.saleRepo.totals[opened.ShiftID] = map[entity.PaymentMethod]decimal.Decimal{
		entity.PaymentCash: decimal.NewFromInt(100),
	}

	// Otro cierre de la misma jornada confirmó entre la lectura previa y el
	// lock de la fila: al bloquearla ya está inactiva.
	runner.shiftRepo.closedUnderLock = true

	_, err = uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{
		Counted: map[string]decimal.Decimal{
			string(entity.PaymentCash): decimal.NewFromInt(100),
		},
	})
	require.ErrorIs(t, err, domain.ErrNoActiveShift)
	assert.Empty(t, runner.closingRepo.closings, "el cierre rechazado no debe duplicar arqueos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests historial
// ──────────────────────────────────────────────────────────────────────────────

func TestShiftHistory_IncluyeArqueosYDuracion(t *testing.T) {
	uc, runner := buildShiftEnv()
	opened, err := uc.Open(context.Background(), testOperatorID)
	require.NoError(t, err)

	runner.saleRepo.totals[opened.ShiftID] = map[entity.PaymentMethod]decimal.Decimal{
		entity.PaymentTransfer: decimal.NewFromInt(30),
	}
	_, err = uc.Close(context.Background(), testOperatorID, dto.CloseShiftRequest{
		Counted: map[string]decimal.Decimal{
			string(entity.PaymentTransfer): decimal.NewFromInt(30),
		},
	})
	require.NoError(t, err)

	items, err := uc.History(context.Background(), repository.ShiftHistoryFilter{UserID: testOperatorID})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, opened.ShiftID, items[0].ID)
	assert.NotNil(t, items[0].Ended)
	assert.NotEqual(t, "en curso", items[0].Duration)
	require.Len(t, items[0].Closings, 1)
	assert.Equal(t, string(entity.PaymentTransfer), items[0].Closings[0].Method)
}
