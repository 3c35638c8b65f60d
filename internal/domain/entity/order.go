package entity

import "time"

// Estados de una orden y de su pago.
const (
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Order representa una orden de compra. Este servicio solo avanza su estado
// de entrega (processing -> delivered) vía la tarea diferida de delivery.
type Order struct {
	ID            string
	UserID        string
	Status        string // ver constantes OrderStatus*
	PaymentStatus string // ver constantes PaymentStatus*
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
