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

// ClientUseCase registro de clientes y su perfil de compras.
type ClientUseCase struct {
	clientRepo  repository.ClientRepository
	saleRepo    repository.SaleRepository
	reportsRepo repository.ReportsRepository
}

// NewClientUseCase crea el caso de uso de clientes.
func NewClientUseCase(
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
	reportsRepo repository.ReportsRepository,
) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, saleRepo: saleRepo, reportsRepo: reportsRepo}
}

// Create registra un cliente. El documento fiscal, si viene, es único.
func (uc *ClientUseCase) Create(ctx context.Context, req dto.ClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      name,
		TaxID:     strings.TrimSpace(req.TaxID),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update edita los datos de contacto de un cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, req dto.ClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	client.Name = name
	client.TaxID = strings.TrimSpace(req.TaxID)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = strings.TrimSpace(req.Email)
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List todos los clientes registrados.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := uc.clientRepo.List()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, *toClientResponse(c))
	}
	return resp, nil
}

// Profile perfil del cliente: datos, historial de compras y acumulados.
func (uc *ClientUseCase) Profile(ctx context.Context, id string) (*dto.ClientProfileResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	sales, err := uc.saleRepo.ListByClient(id)
	if err != nil {
		return nil, err
	}

	totals, err := uc.reportsRepo.ClientTotals(id)
	if err != nil {
		return nil, err
	}

	profile := &dto.ClientProfileResponse{
		Client:     *toClientResponse(client),
		Sales:      make([]dto.SaleResponse, 0, len(sales)),
		TotalSpent: totals.TotalSpent,
		Purchases:  totals.Purchases,
		Voided:     totals.Voided,
	}
	for _, s := range sales {
		resp := dto.SaleResponse{
			ID:            s.ID,
			Date:          s.Date,
			Total:         s.Total,
			GrossMargin:   s.GrossMargin,
			Status:        s.Status,
			PaymentMethod: string(s.PaymentMethod),
			UserID:        s.UserID,
			ShiftID:       s.ShiftID,
			ClientID:      id,
		}
		profile.Sales = append(profile.Sales, resp)
	}
	return profile, nil
}

// Delete elimina un cliente sin compras. Con ventas asociadas se rechaza.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}

	count, err := uc.saleRepo.CountByClient(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}

	return uc.clientRepo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:    c.ID,
		Name:  c.Name,
		TaxID: c.TaxID,
		Phone: c.Phone,
		Email: c.Email,
	}
}
