package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bundle representa un grupo fijo de productos que se vende como una sola
// entrada del catálogo. No tiene categoría propia: su descuento se deriva en
// el momento de aplicar la venta como el máximo de los descuentos de categoría
// de sus productos constituyentes.
type Bundle struct {
	ID            string
	Name          string
	ProductIDs    []string
	SellingPrice  decimal.Decimal
	AdminDiscount *decimal.Decimal // nil = sin descuento activo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
