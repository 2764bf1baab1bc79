package repository

import "github.com/jhoicas/Caja-api/internal/domain/entity"

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(client *entity.Client) error
	List() ([]*entity.Client, error)
	Delete(id string) error
}
