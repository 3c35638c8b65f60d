package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, seller_id, COALESCE(category_id, ''), name, selling_price, admin_discount, is_deleted, is_blocked, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &p.SellingPrice,
		&p.AdminDiscount, &p.IsDeleted, &p.IsBlocked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdatePricing persiste selling_price, admin_discount y updated_at.
func (r *ProductRepo) UpdatePricing(product *entity.Product) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET selling_price = $2, admin_discount = $3, updated_at = $4 WHERE id = $1`,
		product.ID, product.SellingPrice, product.AdminDiscount, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product pricing: %w", err)
	}
	return nil
}

// ListSellerIDsByCategories devuelve los seller_id distintos de productos
// vigentes en las categorías dadas.
func (r *ProductRepo) ListSellerIDsByCategories(categoryIDs []string) ([]string, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT DISTINCT seller_id
		FROM products
		WHERE category_id = ANY($1) AND is_deleted = false AND is_blocked = false`
	rows, err := r.q.Query(context.Background(), query, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("query seller ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seller id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seller ids: %w", err)
	}
	return ids, nil
}
