// Package http expone la API REST del servicio con Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ofertas-api/internal/application/auth"
	"github.com/jhoicas/Ofertas-api/internal/application/notification"
	"github.com/jhoicas/Ofertas-api/internal/application/order"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	AnnouncementUC *notification.AnnouncementUseCase
	DeliveryUC     *order.DeliveryUseCase
	Scheduler      TaskScheduler
	Delays         ScheduleDelays
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	scheduleHandler := NewScheduleHandler(deps.Scheduler, deps.Delays, deps.AnnouncementUC, deps.DeliveryUC, deps.Log)

	// Programación de notificaciones de venta: solo admin.
	sales := api.Group("/sales", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	sales.Post("/schedule-tasks", scheduleHandler.ScheduleTasks)

	// Programación de entrega: admin o el propio comprador vía el backend principal.
	orders := api.Group("/orders", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleBuyer))
	orders.Post("/schedule-delivery", scheduleHandler.ScheduleDelivery)
}
