package entity

import "time"

// Category representa una categoría de productos. Datos de solo lectura para
// este servicio: se consulta el nombre al componer notificaciones.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
