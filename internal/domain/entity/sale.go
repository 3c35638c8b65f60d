package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta promocional con ventana de tiempo.
// Las categorías incluidas definen el porcentaje de descuento aplicable a los
// productos de esa categoría mientras la venta está activa.
// Invariante: StartDate < EndDate (se valida al crearla, fuera de este servicio).
type Sale struct {
	ID              string
	Name            string
	StartDate       time.Time
	EndDate         time.Time
	IsActive        bool // true solo dentro de la ventana [StartDate, EndDate)
	IsDeleted       bool // soft-delete: congela el ciclo de vida
	DiscountApplied bool // evita aplicar el descuento dos veces
	Categories      []SaleCategory
	Products        []string // IDs de productos individuales incluidos
	Bundles         []string // IDs de bundles incluidos
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SaleCategory asocia una categoría con su porcentaje de descuento en la venta.
// Discount está en [0, 100).
type SaleCategory struct {
	CategoryID string
	Discount   decimal.Decimal
}

// DiscountFor devuelve el descuento de la venta para la categoría dada.
// Si la categoría no participa en la venta (o categoryID es vacío) devuelve 0.
func (s *Sale) DiscountFor(categoryID string) decimal.Decimal {
	if categoryID == "" {
		return decimal.Zero
	}
	for _, sc := range s.Categories {
		if sc.CategoryID == categoryID {
			return sc.Discount
		}
	}
	return decimal.Zero
}
