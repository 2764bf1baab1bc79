package entity

import "time"

// Client representa un cliente del comercio. TaxID (documento fiscal) es único si está presente.
type Client struct {
	ID        string
	Name      string
	TaxID     string // documento fiscal, opcional pero único
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
