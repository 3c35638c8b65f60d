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

// RevertUseCase deshace los descuentos de las ventas terminadas invirtiendo
// la transformación de precio. Corre también sobre ventas que nunca tuvieron
// descuento aplicado: con admin_discount nil o 0 la inversión es la identidad
// (salvo el caso singular pct == 100, que falla por entidad y pide corrección
// manual).
type RevertUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	bundleRepo  repository.BundleRepository
	log         *logger.Logger
}

// NewRevertUseCase construye el motor de reversión.
func NewRevertUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	bundleRepo repository.BundleRepository,
	log *logger.Logger,
) *RevertUseCase {
	return &RevertUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		bundleRepo:  bundleRepo,
		log:         log,
	}
}

// Revert busca ventas terminadas (end_date <= now, no eliminadas) y restaura
// precios de bundles y productos. Un fallo por entidad deja esa entidad en su
// estado previo y continúa con las hermanas.
func (uc *RevertUseCase) Revert(ctx context.Context, now time.Time) Result {
	var res Result

	sales, err := uc.saleRepo.FindEnded(now)
	if err != nil {
		uc.log.Error().Err(err).Msg("consultar ventas terminadas")
		res.Failed++
		return res
	}

	for _, s := range sales {
		if ctx.Err() != nil {
			break
		}
		uc.revertSale(s, now, &res)
		res.Sales++
	}
	return res
}

func (uc *RevertUseCase) revertSale(s *entity.Sale, now time.Time, res *Result) {
	for _, bundleID := range s.Bundles {
		uc.revertBundle(s, bundleID, now, res)
	}
	for _, productID := range s.Products {
		uc.revertProduct(s, productID, now, res)
	}

	s.DiscountApplied = false
	s.UpdatedAt = now
	if err := uc.saleRepo.UpdateDiscountApplied(s); err != nil {
		uc.log.Error().Err(err).Str("sale_id", s.ID).Msg("limpiar flag de descuento")
		res.Failed++
	}
}

// revertBundle recalcula el total de los constituyentes (ya revertidos o no,
// el total refleja el estado vigente) e invierte el porcentaje que el bundle
// tiene registrado en admin_discount.
func (uc *RevertUseCase) revertBundle(s *entity.Sale, bundleID string, now time.Time, res *Result) {
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

	totalSellingPrice := decimal.Zero
	for _, productID := range bundle.ProductIDs {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			uc.log.Error().Err(err).Str("product_id", productID).Msg("cargar producto del bundle")
			res.Failed++
			continue
		}
		if product == nil {
			res.Skipped++
			continue
		}
		totalSellingPrice = totalSellingPrice.Add(product.SellingPrice)
	}

	pct := decimal.Zero
	if bundle.AdminDiscount != nil {
		pct = *bundle.AdminDiscount
	}
	original, err := pricing.RemovePercent(totalSellingPrice, pct)
	if err != nil {
		// Singularidad pct == 100: la entidad queda en su estado con
		// descuento y necesita corrección manual.
		uc.log.Error().Err(err).Str("bundle_id", bundleID).Str("pct", pct.String()).Msg("no se puede revertir el descuento del bundle")
		res.Failed++
		return
	}
	bundle.SellingPrice = original
	bundle.AdminDiscount = nil
	bundle.UpdatedAt = now
	if err := uc.bundleRepo.UpdatePricing(bundle); err != nil {
		uc.log.Error().Err(err).Str("bundle_id", bundleID).Msg("persistir precio de bundle")
		res.Failed++
		return
	}
	res.Bundles++
}

func (uc *RevertUseCase) revertProduct(s *entity.Sale, productID string, now time.Time, res *Result) {
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

	pct := decimal.Zero
	if product.AdminDiscount != nil {
		pct = *product.AdminDiscount
	}
	original, err := pricing.RemovePercent(product.SellingPrice, pct)
	if err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Str("pct", pct.String()).Msg("no se puede revertir el descuento del producto")
		res.Failed++
		return
	}
	product.SellingPrice = original
	product.AdminDiscount = nil
	product.UpdatedAt = now
	if err := uc.productRepo.UpdatePricing(product); err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Msg("persistir precio de producto")
		res.Failed++
		return
	}
	res.Products++
}
