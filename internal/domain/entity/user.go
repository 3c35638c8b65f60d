package entity

import "time"

// Roles de usuario en la plataforma.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// User representa un usuario de la plataforma (vendedor, comprador o admin).
// Este servicio solo lo lee: para autenticar al admin y para resolver los
// destinatarios de las notificaciones de venta.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	IsActive     bool
	IsBlocked    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
