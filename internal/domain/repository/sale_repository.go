package repository

import (
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Los cuatro predicados excluyen siempre ventas con is_deleted = true.
type SaleRepository interface {
	// FindStarting devuelve ventas cuya ventana ya comenzó pero siguen
	// inactivas: start_date <= now, end_date > now, is_active = false.
	FindStarting(now time.Time) ([]*entity.Sale, error)
	// FindEnding devuelve ventas activas cuya ventana ya terminó:
	// end_date <= now, is_active = true.
	FindEnding(now time.Time) ([]*entity.Sale, error)
	// FindEnteringWindow devuelve ventas cuyo start_date cae dentro de la
	// tolerancia simétrica alrededor de now y aún no tienen descuento
	// aplicado: now-tol <= start_date <= now+tol, end_date > now,
	// discount_applied = false.
	FindEnteringWindow(now time.Time, tol time.Duration) ([]*entity.Sale, error)
	// FindEnded devuelve toda venta terminada (end_date <= now), tenga o no
	// descuento aplicado: la reversión es idempotente.
	FindEnded(now time.Time) ([]*entity.Sale, error)

	// UpdateActivation persiste is_active y updated_at.
	UpdateActivation(sale *entity.Sale) error
	// UpdateDiscountApplied persiste discount_applied y updated_at.
	UpdateDiscountApplied(sale *entity.Sale) error
}
