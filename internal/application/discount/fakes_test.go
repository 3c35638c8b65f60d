package discount_test

import (
	"time"

	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Replican la semántica de
// los predicados SQL para poder probar los motores sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales   []*entity.Sale
	findErr error
	saveErr error
}

func (f *fakeSaleRepo) FindStarting(now time.Time) ([]*entity.Sale, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*entity.Sale
	for _, s := range f.sales {
		if !s.StartDate.After(now) && s.EndDate.After(now) && !s.IsActive && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) FindEnding(now time.Time) ([]*entity.Sale, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*entity.Sale
	for _, s := range f.sales {
		if !s.EndDate.After(now) && s.IsActive && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) FindEnteringWindow(now time.Time, tol time.Duration) ([]*entity.Sale, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	lo, hi := now.Add(-tol), now.Add(tol)
	var out []*entity.Sale
	for _, s := range f.sales {
		inWindow := !s.StartDate.Before(lo) && !s.StartDate.After(hi)
		if inWindow && s.EndDate.After(now) && !s.IsDeleted && !s.DiscountApplied {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) FindEnded(now time.Time) ([]*entity.Sale, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*entity.Sale
	for _, s := range f.sales {
		if !s.EndDate.After(now) && !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) UpdateActivation(sale *entity.Sale) error {
	return f.saveErr
}

func (f *fakeSaleRepo) UpdateDiscountApplied(sale *entity.Sale) error {
	return f.saveErr
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	saveErr  map[string]error // por ID, simula StoreError en persistencia
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m, saveErr: map[string]error{}}
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) UpdatePricing(product *entity.Product) error {
	if err := f.saveErr[product.ID]; err != nil {
		return err
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) ListSellerIDsByCategories(categoryIDs []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range f.products {
		if p.IsDeleted || p.IsBlocked || seen[p.SellerID] {
			continue
		}
		for _, cid := range categoryIDs {
			if p.CategoryID == cid {
				seen[p.SellerID] = true
				out = append(out, p.SellerID)
				break
			}
		}
	}
	return out, nil
}

type fakeBundleRepo struct {
	bundles map[string]*entity.Bundle
	saveErr map[string]error
}

func newFakeBundleRepo(bundles ...*entity.Bundle) *fakeBundleRepo {
	m := make(map[string]*entity.Bundle, len(bundles))
	for _, b := range bundles {
		m[b.ID] = b
	}
	return &fakeBundleRepo{bundles: m, saveErr: map[string]error{}}
}

func (f *fakeBundleRepo) GetByID(id string) (*entity.Bundle, error) {
	return f.bundles[id], nil
}

func (f *fakeBundleRepo) UpdatePricing(bundle *entity.Bundle) error {
	if err := f.saveErr[bundle.ID]; err != nil {
		return err
	}
	f.bundles[bundle.ID] = bundle
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de entidades de prueba
// ──────────────────────────────────────────────────────────────────────────────

func testProduct(id, categoryID string, price int64) *entity.Product {
	return &entity.Product{
		ID:           id,
		SellerID:     "seller-" + id,
		CategoryID:   categoryID,
		Name:         "producto " + id,
		SellingPrice: decimal.NewFromInt(price),
	}
}

func discountedProduct(id, categoryID string, price, pct int64) *entity.Product {
	p := testProduct(id, categoryID, price)
	d := decimal.NewFromInt(pct)
	p.AdminDiscount = &d
	return p
}

func testSale(id string, start, end time.Time, cats map[string]int64) *entity.Sale {
	s := &entity.Sale{
		ID:        id,
		Name:      "venta " + id,
		StartDate: start,
		EndDate:   end,
	}
	for cid, pct := range cats {
		s.Categories = append(s.Categories, entity.SaleCategory{
			CategoryID: cid,
			Discount:   decimal.NewFromInt(pct),
		})
	}
	return s
}
