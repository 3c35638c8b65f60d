package pricing

import (
	"github.com/jhoicas/Ofertas-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyPercent aplica un descuento porcentual sobre un precio y redondea al
// entero más cercano (mitades hacia afuera del cero):
//
//	precio * (1 - pct/100)
//
// pct debe estar en [0, 100). Devuelve ErrInvalidDiscount fuera de ese rango.
func ApplyPercent(price, pct decimal.Decimal) (decimal.Decimal, error) {
	if err := validatePercent(pct); err != nil {
		return decimal.Zero, err
	}
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return price.Mul(factor).Round(0), nil
}

// RemovePercent invierte la transformación de ApplyPercent:
//
//	precioConDescuento / (1 - pct/100)
//
// La división es singular en pct == 100; en ese caso (o con pct fuera de
// rango) devuelve ErrInvalidDiscount y la entidad debe quedar intacta.
//
// La ida y vuelta ApplyPercent -> RemovePercent puede desviarse hasta ±1
// unidad por el redondeo intermedio. Es una pérdida conocida y aceptada,
// no un defecto a corregir.
func RemovePercent(discountedPrice, pct decimal.Decimal) (decimal.Decimal, error) {
	if err := validatePercent(pct); err != nil {
		return decimal.Zero, err
	}
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return discountedPrice.Div(factor).Round(0), nil
}

func validatePercent(pct decimal.Decimal) error {
	if pct.LessThan(decimal.Zero) || pct.GreaterThanOrEqual(hundred) {
		return domain.ErrInvalidDiscount
	}
	return nil
}
