package repository

import "github.com/jhoicas/Ofertas-api/internal/domain/entity"

// BundleRepository define el puerto de persistencia para Bundle (DIP).
type BundleRepository interface {
	GetByID(id string) (*entity.Bundle, error)
	// UpdatePricing persiste selling_price, admin_discount y updated_at.
	UpdatePricing(bundle *entity.Bundle) error
}
