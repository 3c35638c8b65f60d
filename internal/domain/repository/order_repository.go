package repository

import "github.com/jhoicas/Ofertas-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	GetByID(id string) (*entity.Order, error)
	// UpdateStatus persiste status, payment_status y updated_at.
	UpdateStatus(order *entity.Order) error
}
