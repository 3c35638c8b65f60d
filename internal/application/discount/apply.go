package discount

import (
	"context"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/internal/domain/pricing"
	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// StartWindowTolerance es la tolerancia simétrica alrededor de start_date
// dentro de la cual una venta es elegible para aplicar descuentos. El motor
// corre en un tick de intervalo fijo y debe atrapar la venta cerca de su
// instante de inicio sin exigir alineación exacta de reloj; el riesgo de
// doble procesamiento que abre la ventana lo cierra el flag discount_applied.
const StartWindowTolerance = 5 * time.Second

// Result resume lo procesado en un tick del motor de descuentos.
// Skipped cuenta referencias a productos/bundles inexistentes (se registran
// y se omiten, nunca abortan el lote); Failed cuenta fallos de persistencia
// o de aritmética por entidad.
type Result struct {
	Sales    int
	Products int
	Bundles  int
	Skipped  int
	Failed   int
}

// ApplyUseCase aplica los descuentos de las ventas que están entrando en su
// ventana. Por cada venta procesa primero los bundles y después los productos
// sueltos: el precio del bundle se calcula sobre los precios SIN descontar de
// sus constituyentes, y ese orden es el que lo garantiza.
type ApplyUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	bundleRepo  repository.BundleRepository
	tolerance   time.Duration
	log         *logger.Logger
}

// NewApplyUseCase construye el motor de aplicación. tolerance <= 0 usa
// StartWindowTolerance.
func NewApplyUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	bundleRepo repository.BundleRepository,
	tolerance time.Duration,
	log *logger.Logger,
) *ApplyUseCase {
	if tolerance <= 0 {
		tolerance = StartWindowTolerance
	}
	return &ApplyUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		bundleRepo:  bundleRepo,
		tolerance:   tolerance,
		log:         log,
	}
}

// Apply busca las ventas elegibles (start_date dentro de ±tolerance de now,
// end_date > now, sin descuento aplicado) y muta precios de bundles y
// productos. Un fallo en una entidad o en una venta nunca interrumpe a sus
// hermanas del mismo tick.
func (uc *ApplyUseCase) Apply(ctx context.Context, now time.Time) Result {
	var res Result

	sales, err := uc.saleRepo.FindEnteringWindow(now, uc.tolerance)
	if err != nil {
		uc.log.Error().Err(err).Msg("consultar ventas entrando en ventana")
		res.Failed++
		return res
	}

	for _, s := range sales {
		if ctx.Err() != nil {
			break
		}
		uc.applySale(s, now, &res)
		res.Sales++
	}
	if res.Sales > 0 {
		uc.log.Info().
			Int("sales", res.Sales).
			Int("products", res.Products).
			Int("bundles", res.Bundles).
			Int("skipped", res.Skipped).
			Int("failed", res.Failed).
			Msg("descuentos aplicados")
	}
	return res
}

func (uc *ApplyUseCase) applySale(s *entity.Sale, now time.Time, res *Result) {
	// Bundles primero: leen los precios todavía sin descontar.
	for _, bundleID := range s.Bundles {
		uc.applyBundle(s, bundleID, now, res)
	}
	for _, productID := range s.Products {
		uc.applyProduct(s, productID, now, res)
	}

	s.DiscountApplied = true
	s.UpdatedAt = now
	if err := uc.saleRepo.UpdateDiscountApplied(s); err != nil {
		uc.log.Error().Err(err).Str("sale_id", s.ID).Msg("marcar descuento aplicado")
		res.Failed++
	}
}

// applyBundle deriva el descuento del bundle como el máximo descuento de
// categoría entre sus constituyentes y lo aplica sobre la suma de sus precios.
func (uc *ApplyUseCase) applyBundle(s *entity.Sale, bundleID string, now time.Time, res *Result) {
	bundle, err := uc.bundleRepo.GetByID(bundleID)
	if err != nil {
		uc.log.Error().Err(err).Str("bundle_id", bundleID).Msg("cargar bundle")
		res.Failed++
		return
	}
	if bundle == nil {
		uc.log.Warn().Str("sale_id", s.ID).Str("bundle_id", bundleID).Msg("bundle de la venta no existe, se omite")
		res.Skipped++
		return
	}

	maxDiscount := decimal.Zero
	totalSellingPrice := decimal.Zero
	for _, productID := range bundle.ProductIDs {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			uc.log.Error().Err(err).Str("product_id", productID).Msg("cargar producto del bundle")
			res.Failed++
			continue
		}
		if product == nil {
			uc.log.Warn().Str("bundle_id", bundleID).Str("product_id", productID).Msg("producto del bundle no existe, se omite")
			res.Skipped++
			continue
		}
		if d := s.DiscountFor(product.CategoryID); d.GreaterThan(maxDiscount) {
			maxDiscount = d
		}
		totalSellingPrice = totalSellingPrice.Add(product.SellingPrice)
	}

	discounted, err := pricing.ApplyPercent(totalSellingPrice, maxDiscount)
	if err != nil {
		uc.log.Error().Err(err).Str("bundle_id", bundleID).Str("pct", maxDiscount.String()).Msg("descuento de bundle inválido")
		res.Failed++
		return
	}
	bundle.SellingPrice = discounted
	bundle.AdminDiscount = &maxDiscount
	bundle.UpdatedAt = now
	if err := uc.bundleRepo.UpdatePricing(bundle); err != nil {
		uc.log.Error().Err(err).Str("bundle_id", bundleID).Msg("persistir precio de bundle")
		res.Failed++
		return
	}
	res.Bundles++
}

func (uc *ApplyUseCase) applyProduct(s *entity.Sale, productID string, now time.Time, res *Result) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Msg("cargar producto")
		res.Failed++
		return
	}
	if product == nil {
		uc.log.Warn().Str("sale_id", s.ID).Str("product_id", productID).Msg("producto de la venta no existe, se omite")
		res.Skipped++
		return
	}

	discount := s.DiscountFor(product.CategoryID)
	discounted, err := pricing.ApplyPercent(product.SellingPrice, discount)
	if err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Str("pct", discount.String()).Msg("descuento de producto inválido")
		res.Failed++
		return
	}
	product.SellingPrice = discounted
	product.AdminDiscount = &discount
	product.UpdatedAt = now
	if err := uc.productRepo.UpdatePricing(product); err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Msg("persistir precio de producto")
		res.Failed++
		return
	}
	res.Products++
}
