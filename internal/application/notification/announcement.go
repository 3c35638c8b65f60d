package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
)

// AnnouncementInput describe la venta a anunciar. Llega del endpoint de
// programación, no de la base de datos: la venta puede aún no existir como
// registro cuando se programa la notificación.
type AnnouncementInput struct {
	SaleName   string
	StartDate  time.Time
	EndDate    time.Time
	Categories []entity.SaleCategory
}

// AnnouncementUseCase envía las notificaciones de una venta programada:
// a los vendedores con productos en las categorías incluidas y a todos los
// compradores activos. Fallos por destinatario se registran y no se
// reintentan ni se propagan.
type AnnouncementUseCase struct {
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	mailer       Mailer
	log          *logger.Logger
}

// NewAnnouncementUseCase construye el caso de uso.
func NewAnnouncementUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	mailer Mailer,
	log *logger.Logger,
) *AnnouncementUseCase {
	return &AnnouncementUseCase{
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mailer:       mailer,
		log:          log,
	}
}

// NotifySellers notifica a los vendedores activos y no bloqueados que tienen
// productos (no eliminados, no bloqueados) en las categorías de la venta.
func (uc *AnnouncementUseCase) NotifySellers(ctx context.Context, in AnnouncementInput) error {
	categoryIDs := make([]string, 0, len(in.Categories))
	for _, c := range in.Categories {
		categoryIDs = append(categoryIDs, c.CategoryID)
	}

	sellerIDs, err := uc.productRepo.ListSellerIDsByCategories(categoryIDs)
	if err != nil {
		return fmt.Errorf("buscar vendedores por categorías: %w", err)
	}
	if len(sellerIDs) == 0 {
		uc.log.Warn().Str("sale", in.SaleName).Msg("no hay vendedores para notificar")
		return nil
	}

	sellers, err := uc.userRepo.ListActiveByIDsAndRole(sellerIDs, entity.RoleSeller)
	if err != nil {
		return fmt.Errorf("cargar vendedores: %w", err)
	}

	body, err := renderTemplate(sellerTemplate, in.SaleName, in.StartDate, in.EndDate, uc.resolveCategories(in.Categories))
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Nueva venta: %s - ¡No te la pierdas!", in.SaleName)
	uc.sendToAll(ctx, sellers, subject, body)
	return nil
}

// NotifyBuyers notifica a todos los usuarios activos y no bloqueados,
// sin importar el rol.
func (uc *AnnouncementUseCase) NotifyBuyers(ctx context.Context, in AnnouncementInput) error {
	users, err := uc.userRepo.ListActiveByRole("")
	if err != nil {
		return fmt.Errorf("cargar usuarios: %w", err)
	}
	if len(users) == 0 {
		uc.log.Warn().Str("sale", in.SaleName).Msg("no hay usuarios para notificar")
		return nil
	}

	body, err := renderTemplate(buyerTemplate, in.SaleName, in.StartDate, in.EndDate, uc.resolveCategories(in.Categories))
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Gran venta: %s - ¡Aprovecha los descuentos!", in.SaleName)
	uc.sendToAll(ctx, users, subject, body)
	return nil
}

// resolveCategories combina cada categoría de la venta con su nombre.
// Una categoría inexistente no es fatal: se anuncia como "Desconocida".
func (uc *AnnouncementUseCase) resolveCategories(cats []entity.SaleCategory) []categoryDetail {
	out := make([]categoryDetail, 0, len(cats))
	for _, c := range cats {
		name := "Desconocida"
		category, err := uc.categoryRepo.GetByID(c.CategoryID)
		if err != nil {
			uc.log.Error().Err(err).Str("category_id", c.CategoryID).Msg("cargar categoría")
		} else if category != nil {
			name = category.Name
		}
		out = append(out, categoryDetail{Name: name, Discount: c.Discount.String()})
	}
	return out
}

// sendToAll envía a cada destinatario; un fallo individual se registra y el
// bucle continúa con el siguiente.
func (uc *AnnouncementUseCase) sendToAll(ctx context.Context, users []*entity.User, subject, body string) {
	for _, u := range users {
		if ctx.Err() != nil {
			return
		}
		if err := uc.mailer.Send(u.Email, subject, body); err != nil {
			uc.log.Error().Err(err).Str("email", u.Email).Msg("enviar notificación")
			continue
		}
		uc.log.Debug().Str("email", u.Email).Msg("notificación enviada")
	}
}
