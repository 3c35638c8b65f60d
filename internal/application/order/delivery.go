package order

import (
	"context"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
)

// DeliveryUseCase avanza el estado de una orden cuando vence la tarea
// diferida de entrega: processing -> delivered y el pago queda en paid.
type DeliveryUseCase struct {
	orderRepo repository.OrderRepository
	log       *logger.Logger
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(orderRepo repository.OrderRepository, log *logger.Logger) *DeliveryUseCase {
	return &DeliveryUseCase{orderRepo: orderRepo, log: log}
}

// GetOrder obtiene la orden, o ErrNotFound si no existe.
func (uc *DeliveryUseCase) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// MarkDelivered marca la orden como entregada y pagada.
// Devuelve ErrNotFound si la orden no existe.
func (uc *DeliveryUseCase) MarkDelivered(ctx context.Context, orderID string) error {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}

	o.Status = entity.OrderStatusDelivered
	o.PaymentStatus = entity.PaymentStatusPaid
	o.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(o); err != nil {
		return err
	}
	uc.log.Info().Str("order_id", orderID).Msg("orden marcada como entregada")
	return nil
}
