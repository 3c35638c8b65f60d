package sale

import (
	"context"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
)

// LifecycleUseCase transiciona el flag is_active de las ventas según su
// ventana de tiempo: Pending -> Active -> Ended. No hay transición hacia
// atrás y las ventas con soft-delete quedan congeladas (los predicados del
// repositorio ya las excluyen).
type LifecycleUseCase struct {
	saleRepo repository.SaleRepository
	log      *logger.Logger
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(saleRepo repository.SaleRepository, log *logger.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{saleRepo: saleRepo, log: log}
}

// StartScheduledSales activa toda venta cuya ventana ya comenzó y sigue
// inactiva. Procesa el lote completo: un fallo al persistir una venta se
// registra y no interrumpe a las demás. Devuelve cuántas ventas activó.
func (uc *LifecycleUseCase) StartScheduledSales(ctx context.Context, now time.Time) int {
	sales, err := uc.saleRepo.FindStarting(now)
	if err != nil {
		uc.log.Error().Err(err).Msg("consultar ventas por iniciar")
		return 0
	}

	started := 0
	for _, s := range sales {
		if ctx.Err() != nil {
			break
		}
		s.IsActive = true
		s.UpdatedAt = now
		if err := uc.saleRepo.UpdateActivation(s); err != nil {
			uc.log.Error().Err(err).Str("sale_id", s.ID).Msg("activar venta")
			continue
		}
		started++
	}
	if started > 0 {
		uc.log.Info().Int("count", started).Msg("ventas iniciadas")
	}
	return started
}

// EndExpiredSales desactiva toda venta activa cuya ventana ya terminó.
// Mismo contrato por lotes que StartScheduledSales.
func (uc *LifecycleUseCase) EndExpiredSales(ctx context.Context, now time.Time) int {
	sales, err := uc.saleRepo.FindEnding(now)
	if err != nil {
		uc.log.Error().Err(err).Msg("consultar ventas por terminar")
		return 0
	}

	ended := 0
	for _, s := range sales {
		if ctx.Err() != nil {
			break
		}
		s.IsActive = false
		s.UpdatedAt = now
		if err := uc.saleRepo.UpdateActivation(s); err != nil {
			uc.log.Error().Err(err).Str("sale_id", s.ID).Msg("desactivar venta")
			continue
		}
		ended++
	}
	if ended > 0 {
		uc.log.Info().Int("count", ended).Msg("ventas terminadas")
	}
	return ended
}
