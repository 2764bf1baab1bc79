package dto

import "github.com/shopspring/decimal"

// ClientRequest body para crear o editar un cliente.
type ClientRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// ClientProfileResponse perfil detallado: historial y analítica de compras.
type ClientProfileResponse struct {
	Client     ClientResponse  `json:"client"`
	Sales      []SaleResponse  `json:"sales"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Purchases  int             `json:"purchases"`
	Voided     int             `json:"voided"`
}
