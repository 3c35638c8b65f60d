package repository

import "github.com/jhoicas/Ofertas-api/internal/domain/entity"

// UserRepository define el puerto de lectura para User (DIP).
// Este servicio no crea ni modifica usuarios.
type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	// ListActiveByRole devuelve usuarios activos y no bloqueados con el rol
	// dado. Con role vacío devuelve todos los activos no bloqueados.
	ListActiveByRole(role string) ([]*entity.User, error)
	// ListActiveByIDsAndRole filtra por IDs además del rol (para notificar
	// solo a los vendedores con productos en la venta).
	ListActiveByIDsAndRole(ids []string, role string) ([]*entity.User, error)
}
