package repository

import "github.com/jhoicas/Ofertas-api/internal/domain/entity"

// CategoryRepository define el puerto de lectura para Category (DIP).
// Este servicio nunca muta categorías.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
}
