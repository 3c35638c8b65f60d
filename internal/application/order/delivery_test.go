package order_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Ofertas-api/internal/application/order"
	"github.com/jhoicas/Ofertas-api/internal/domain"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) UpdateStatus(o *entity.Order) error {
	f.orders[o.ID] = o
	return nil
}

func TestMarkDelivered_AvanzaEstadoYPago(t *testing.T) {
	repo := &fakeOrderRepo{orders: map[string]*entity.Order{
		"o1": {ID: "o1", Status: entity.OrderStatusProcessing, PaymentStatus: entity.PaymentStatusPending},
	}}
	uc := order.NewDeliveryUseCase(repo, logger.Nop())

	err := uc.MarkDelivered(context.Background(), "o1")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, repo.orders["o1"].Status)
	assert.Equal(t, entity.PaymentStatusPaid, repo.orders["o1"].PaymentStatus)
}

func TestMarkDelivered_OrdenInexistente(t *testing.T) {
	repo := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	uc := order.NewDeliveryUseCase(repo, logger.Nop())

	err := uc.MarkDelivered(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
