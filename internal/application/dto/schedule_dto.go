package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleCategory categoría incluida en la venta con su descuento.
type ScheduleCategory struct {
	CategoryID string          `json:"categoryId"`
	Discount   decimal.Decimal `json:"discount"`
}

// ScheduleTasksRequest programa las notificaciones diferidas de una venta.
type ScheduleTasksRequest struct {
	SaleID     string             `json:"saleId"`
	SaleName   string             `json:"saleName"`
	StartDate  time.Time          `json:"startDate"`
	EndDate    time.Time          `json:"endDate"`
	Categories []ScheduleCategory `json:"categories"`
}

// ScheduleTasksResponse confirma la programación. TaskID identifica la
// ejecución diferida en los logs.
type ScheduleTasksResponse struct {
	Message  string `json:"message"`
	SaleID   string `json:"saleId"`
	TaskID   string `json:"taskId"`
	RunsInMS int64  `json:"runsInMs"`
}

// ScheduleDeliveryRequest programa el avance diferido de estado de una orden.
type ScheduleDeliveryRequest struct {
	OrderID string `json:"orderId"`
}

// ScheduleDeliveryResponse confirma la programación.
type ScheduleDeliveryResponse struct {
	Message  string `json:"message"`
	OrderID  string `json:"orderId"`
	TaskID   string `json:"taskId"`
	RunsInMS int64  `json:"runsInMs"`
}
