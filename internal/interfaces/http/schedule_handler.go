package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Ofertas-api/internal/application/dto"
	"github.com/jhoicas/Ofertas-api/internal/application/notification"
	"github.com/jhoicas/Ofertas-api/internal/application/order"
	"github.com/jhoicas/Ofertas-api/internal/domain"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
)

// TaskScheduler puerto mínimo del planificador de tareas diferidas.
// Satisfecho por *scheduler.Scheduler.
type TaskScheduler interface {
	ScheduleOnce(delay time.Duration, name string, fn func(ctx context.Context))
}

// ScheduleDelays retardos configurables de las tareas diferidas.
type ScheduleDelays struct {
	Notify   time.Duration
	Delivery time.Duration
}

// ScheduleHandler programa las tareas diferidas: notificaciones de venta y
// avance de estado de órdenes.
type ScheduleHandler struct {
	sched        TaskScheduler
	delays       ScheduleDelays
	announcement *notification.AnnouncementUseCase
	delivery     *order.DeliveryUseCase
	log          *logger.Logger
}

// NewScheduleHandler construye el handler de programación de tareas.
func NewScheduleHandler(
	sched TaskScheduler,
	delays ScheduleDelays,
	announcement *notification.AnnouncementUseCase,
	delivery *order.DeliveryUseCase,
	log *logger.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		sched:        sched,
		delays:       delays,
		announcement: announcement,
		delivery:     delivery,
		log:          log,
	}
}

// ScheduleTasks godoc
// @Summary      Programar notificaciones de una venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleTasksRequest  true  "datos de la venta"
// @Success      200   {object}  dto.ScheduleTasksResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/schedule-tasks [post]
func (h *ScheduleHandler) ScheduleTasks(c *fiber.Ctx) error {
	var in dto.ScheduleTasksRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SaleID == "" || in.SaleName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "saleId y saleName son requeridos"})
	}

	input := notification.AnnouncementInput{
		SaleName:  in.SaleName,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	for _, cat := range in.Categories {
		input.Categories = append(input.Categories, entity.SaleCategory{
			CategoryID: cat.CategoryID,
			Discount:   cat.Discount,
		})
	}

	taskID := uuid.NewString()
	h.sched.ScheduleOnce(h.delays.Notify, "notify-sale-"+in.SaleID, func(ctx context.Context) {
		if err := h.announcement.NotifySellers(ctx, input); err != nil {
			h.log.Error().Err(err).Str("sale_id", in.SaleID).Str("task_id", taskID).Msg("notificación a vendedores falló")
		}
		if err := h.announcement.NotifyBuyers(ctx, input); err != nil {
			h.log.Error().Err(err).Str("sale_id", in.SaleID).Str("task_id", taskID).Msg("notificación a compradores falló")
		}
	})

	return c.JSON(dto.ScheduleTasksResponse{
		Message:  "notificaciones programadas",
		SaleID:   in.SaleID,
		TaskID:   taskID,
		RunsInMS: h.delays.Notify.Milliseconds(),
	})
}

// ScheduleDelivery godoc
// @Summary      Programar avance de estado de una orden
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleDeliveryRequest  true  "orderId"
// @Success      200   {object}  dto.ScheduleDeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/schedule-delivery [post]
func (h *ScheduleHandler) ScheduleDelivery(c *fiber.Ctx) error {
	var in dto.ScheduleDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "orderId es requerido"})
	}

	// Se valida la existencia antes de programar para responder 404 ahora
	// y no descubrirlo en la tarea diferida.
	if _, err := h.delivery.GetOrder(c.Context(), in.OrderID); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "la orden no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	taskID := uuid.NewString()
	h.sched.ScheduleOnce(h.delays.Delivery, "deliver-order-"+in.OrderID, func(ctx context.Context) {
		if err := h.delivery.MarkDelivered(ctx, in.OrderID); err != nil {
			h.log.Error().Err(err).Str("order_id", in.OrderID).Str("task_id", taskID).Msg("avance de orden falló")
		}
	})

	return c.JSON(dto.ScheduleDeliveryResponse{
		Message:  "entrega programada",
		OrderID:  in.OrderID,
		TaskID:   taskID,
		RunsInMS: h.delays.Delivery.Milliseconds(),
	})
}
