package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo implementación del puerto BundleRepository sobre PostgreSQL (usable con pool o tx).
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador de persistencia para bundles. Pasar pool o tx (Querier).
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// GetByID obtiene un bundle por ID, con sus product_ids constituyentes.
func (r *BundleRepo) GetByID(id string) (*entity.Bundle, error) {
	query := `
		SELECT id, name, selling_price, admin_discount, created_at, updated_at
		FROM bundles WHERE id = $1`
	var b entity.Bundle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.SellingPrice, &b.AdminDiscount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bundle: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT product_id FROM bundle_products WHERE bundle_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query bundle products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scan bundle product: %w", err)
		}
		b.ProductIDs = append(b.ProductIDs, pid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bundle products: %w", err)
	}
	return &b, nil
}

// UpdatePricing persiste selling_price, admin_discount y updated_at.
func (r *BundleRepo) UpdatePricing(bundle *entity.Bundle) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bundles SET selling_price = $2, admin_discount = $3, updated_at = $4 WHERE id = $1`,
		bundle.ID, bundle.SellingPrice, bundle.AdminDiscount, bundle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bundle pricing: %w", err)
	}
	return nil
}
