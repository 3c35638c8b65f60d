package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, name, start_date, end_date, is_active, is_deleted, discount_applied, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// FindStarting ventas cuya ventana comenzó y siguen inactivas.
func (r *SaleRepo) FindStarting(now time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE start_date <= $1 AND end_date > $1 AND is_active = false AND is_deleted = false`
	return r.findSales(query, now)
}

// FindEnding ventas activas cuya ventana terminó.
func (r *SaleRepo) FindEnding(now time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE end_date <= $1 AND is_active = true AND is_deleted = false`
	return r.findSales(query, now)
}

// FindEnteringWindow ventas con start_date dentro de la tolerancia simétrica
// alrededor de now y sin descuento aplicado.
func (r *SaleRepo) FindEnteringWindow(now time.Time, tol time.Duration) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE start_date >= $1 AND start_date <= $2 AND end_date > $3
		  AND is_deleted = false AND discount_applied = false`
	return r.findSales(query, now.Add(-tol), now.Add(tol), now)
}

// FindEnded ventas terminadas, hayan aplicado descuento o no.
func (r *SaleRepo) FindEnded(now time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE end_date <= $1 AND is_deleted = false`
	return r.findSales(query, now)
}

// UpdateActivation persiste is_active y updated_at.
func (r *SaleRepo) UpdateActivation(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET is_active = $2, updated_at = $3 WHERE id = $1`,
		sale.ID, sale.IsActive, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale activation: %w", err)
	}
	return nil
}

// UpdateDiscountApplied persiste discount_applied y updated_at.
func (r *SaleRepo) UpdateDiscountApplied(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET discount_applied = $2, updated_at = $3 WHERE id = $1`,
		sale.ID, sale.DiscountApplied, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale discount flag: %w", err)
	}
	return nil
}

func (r *SaleRepo) findSales(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Name, &s.StartDate, &s.EndDate,
			&s.IsActive, &s.IsDeleted, &s.DiscountApplied,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	for _, s := range sales {
		if err := r.loadRelations(s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

// loadRelations carga categorías, productos y bundles de la venta.
func (r *SaleRepo) loadRelations(s *entity.Sale) error {
	ctx := context.Background()

	rows, err := r.q.Query(ctx,
		`SELECT category_id, discount FROM sale_categories WHERE sale_id = $1`,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("query sale categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc entity.SaleCategory
		if err := rows.Scan(&sc.CategoryID, &sc.Discount); err != nil {
			return fmt.Errorf("scan sale category: %w", err)
		}
		s.Categories = append(s.Categories, sc)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate sale categories: %w", err)
	}

	if s.Products, err = r.relatedIDs(ctx, `SELECT product_id FROM sale_products WHERE sale_id = $1`, s.ID); err != nil {
		return err
	}
	if s.Bundles, err = r.relatedIDs(ctx, `SELECT bundle_id FROM sale_bundles WHERE sale_id = $1`, s.ID); err != nil {
		return err
	}
	return nil
}

func (r *SaleRepo) relatedIDs(ctx context.Context, query, saleID string) ([]string, error) {
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale relations: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan sale relation: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale relations: %w", err)
	}
	return ids, nil
}
