package repository

import "github.com/jhoicas/Ofertas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// UpdatePricing persiste selling_price, admin_discount y updated_at.
	// Es la única mutación que este servicio hace sobre productos.
	UpdatePricing(product *entity.Product) error
	// ListSellerIDsByCategories devuelve los seller_id distintos de productos
	// no eliminados ni bloqueados en las categorías dadas.
	ListSellerIDsByCategories(categoryIDs []string) ([]string, error)
}
