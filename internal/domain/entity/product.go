package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo publicado por un vendedor.
// SellingPrice es el precio vigente (mutable): mientras AdminDiscount no sea nil,
// ya tiene el descuento incorporado y nadie más debe modificarlo, porque la
// reversión depende de invertir exactamente el último porcentaje aplicado.
type Product struct {
	ID            string
	SellerID      string
	CategoryID    string // vacío = sin categoría (referencia débil)
	Name          string
	SellingPrice  decimal.Decimal
	AdminDiscount *decimal.Decimal // nil = sin descuento activo
	IsDeleted     bool
	IsBlocked     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
