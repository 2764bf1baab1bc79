package shifts

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/domain"
	"github.com/jhoicas/Caja-api/internal/domain/entity"
	"github.com/jhoicas/Caja-api/internal/domain/repository"
)

// UseCase apertura, cierre con arqueo e historial de jornadas.
type UseCase struct {
	txRunner    TxRunner
	shiftRepo   repository.ShiftRepository
	saleRepo    repository.SaleRepository
	closingRepo repository.ClosingRepository
}

// NewUseCase crea el caso de uso de jornadas.
func NewUseCase(
	txRunner TxRunner,
	shiftRepo repository.ShiftRepository,
	saleRepo repository.SaleRepository,
	closingRepo repository.ClosingRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		shiftRepo:   shiftRepo,
		saleRepo:    saleRepo,
		closingRepo: closingRepo,
	}
}

// Open abre una jornada para el operador. Un operador solo puede tener una
// jornada activa; el índice único parcial en base de datos cierra la carrera
// entre dos aperturas simultáneas.
func (uc *UseCase) Open(ctx context.Context, userID string) (*dto.OpenShiftResponse, error) {
	active, err := uc.shiftRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrShiftAlreadyOpen
	}

	shift := &entity.Shift{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: time.Now(),
		Active:    true,
	}
	if err := uc.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return &dto.OpenShiftResponse{ShiftID: shift.ID, StartedAt: shift.StartedAt}, nil
}

// ExpectedTotals totales vendidos por método de la jornada activa, para la
// pantalla previa al cierre.
func (uc *UseCase) ExpectedTotals(ctx context.Context, userID string) (*dto.ExpectedTotalsResponse, error) {
	shift, err := uc.shiftRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNoActiveShift
	}

	totals, err := uc.saleRepo.TotalsByPaymentMethod(shift.ID)
	if err != nil {
		return nil, err
	}

	expected := make(map[string]decimal.Decimal, len(totals))
	for method, amount := range totals {
		expected[string(method)] = amount
	}
	return &dto.ExpectedTotalsResponse{ShiftID: shift.ID, Expected: expected}, nil
}

// Close cierra la jornada activa del operador con arqueo por método de pago.
// Los totales esperados se recalculan dentro de la transacción de cierre para
// que una venta concurrente no quede fuera del arqueo. Un método vendido sin
// monto declarado cuenta como 0 contado; una jornada sin ventas cierra sin
// arqueos. La diferencia es contado menos esperado: positiva sobra, negativa
// falta.
func (uc *UseCase) Close(ctx context.Context, userID string, req dto.CloseShiftRequest) (*dto.CloseShiftResponse, error) {
	shift, err := uc.shiftRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNoActiveShift
	}

	endedAt := time.Now()
	var closings []dto.ClosingResponse

	err = uc.txRunner.RunShiftClose(ctx, func(
		saleRepo repository.SaleRepository,
		shiftRepo repository.ShiftRepository,
		closingRepo repository.ClosingRepository,
	) error {
		// Bloquear la jornada antes de calcular totales: una venta en vuelo
		// sobre esta jornada sostiene el mismo lock, así que o confirma antes
		// y entra al arqueo, o espera y se rechaza por jornada cerrada.
		locked, err := shiftRepo.GetForUpdate(shift.ID)
		if err != nil {
			return err
		}
		if locked == nil || !locked.Active {
			return domain.ErrNoActiveShift
		}

		expected, err := saleRepo.TotalsByPaymentMethod(shift.ID)
		if err != nil {
			return err
		}

		// Orden estable de métodos para arqueos y respuesta.
		methods := make([]entity.PaymentMethod, 0, len(expected))
		for method := range expected {
			methods = append(methods, method)
		}
		sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })

		closings = make([]dto.ClosingResponse, 0, len(methods))
		for _, method := range methods {
			exp := expected[method]
			counted := req.Counted[string(method)] // ausente = 0
			variance := counted.Sub(exp)

			closing := &entity.PaymentMethodClosing{
				ID:       uuid.New().String(),
				ShiftID:  shift.ID,
				Method:   method,
				Expected: exp,
				Counted:  counted,
				Variance: variance,
			}
			if err := closingRepo.Create(closing); err != nil {
				return err
			}

			closings = append(closings, dto.ClosingResponse{
				Method:   string(method),
				Expected: exp,
				Counted:  counted,
				Variance: variance,
			})
		}

		return shiftRepo.Close(shift.ID, endedAt, req.Notes)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CloseShiftResponse{
		ShiftID:      shift.ID,
		EndedAt:      endedAt,
		Closings:     closings,
		CashOutcome:  dto.CashOutcomeBalanced,
		CashVariance: decimal.Zero,
	}
	for _, c := range closings {
		if c.Method != string(entity.PaymentCash) {
			continue
		}
		resp.CashVariance = c.Variance
		switch {
		case c.Variance.IsPositive():
			resp.CashOutcome = dto.CashOutcomeSurplus
		case c.Variance.IsNegative():
			resp.CashOutcome = dto.CashOutcomeShortage
		}
	}
	return resp, nil
}

// Active devuelve la jornada activa del operador, o nil si no tiene.
func (uc *UseCase) Active(ctx context.Context, userID string) (*entity.Shift, error) {
	return uc.shiftRepo.GetActiveByUser(userID)
}

// History jornadas cerradas con sus arqueos, filtrable por operador y día.
func (uc *UseCase) History(ctx context.Context, filter repository.ShiftHistoryFilter) ([]dto.ShiftHistoryItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	closed, err := uc.shiftRepo.ListClosed(filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ShiftHistoryItem, 0, len(closed))
	for _, shift := range closed {
		shiftClosings, err := uc.closingRepo.ListByShift(shift.ID)
		if err != nil {
			return nil, err
		}

		item := dto.ShiftHistoryItem{
			ID:       shift.ID,
			UserID:   shift.UserID,
			Started:  shift.StartedAt,
			Ended:    shift.EndedAt,
			Duration: shift.Duration(),
			Notes:    shift.ClosingNotes,
			Closings: make([]dto.ClosingResponse, 0, len(shiftClosings)),
		}
		for _, c := range shiftClosings {
			item.Closings = append(item.Closings, dto.ClosingResponse{
				Method:   string(c.Method),
				Expected: c.Expected,
				Counted:  c.Counted,
				Variance: c.Variance,
			})
		}
		items = append(items, item)
	}
	return items, nil
}
