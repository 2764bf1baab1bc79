package dto

import "time"

// AdjustStockRequest body para POST /api/stock/adjustments.
// Quantity es el delta con signo; Reason es texto libre obligatorio.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// AdjustStockResponse nuevo stock tras el ajuste.
type AdjustStockResponse struct {
	ProductID  string `json:"product_id"`
	MovementID string `json:"movement_id"`
	NewStock   int    `json:"new_stock"`
	LowStock   bool   `json:"low_stock"`
}

// MovementResponse movimiento de stock en el reporte de auditoría.
type MovementResponse struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Quantity  int       `json:"quantity"`
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason,omitempty"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
}
