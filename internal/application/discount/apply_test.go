package discount_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Ofertas-api/internal/application/discount"
	"github.com/jhoicas/Ofertas-api/internal/domain/entity"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplyUC(sales *fakeSaleRepo, products *fakeProductRepo, bundles *fakeBundleRepo) *discount.ApplyUseCase {
	return discount.NewApplyUseCase(sales, products, bundles, 5*time.Second, logger.Nop())
}

// Escenario de referencia: venta que acaba de empezar, un producto de la
// categoría en descuento → precio 100 pasa a 80 y la venta queda marcada.
func TestApply_ProductoDeCategoriaEnVenta(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now.Add(-2*time.Second), now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"p1"}

	products := newFakeProductRepo(testProduct("p1", "catA", 100))
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	res := uc.Apply(context.Background(), now)

	assert.Equal(t, 1, res.Sales)
	assert.Equal(t, 1, res.Products)
	assert.Zero(t, res.Failed)

	p1 := products.products["p1"]
	assert.True(t, decimal.NewFromInt(80).Equal(p1.SellingPrice), "precio con 20%% debe ser 80, obtenido %s", p1.SellingPrice)
	require.NotNil(t, p1.AdminDiscount)
	assert.True(t, decimal.NewFromInt(20).Equal(*p1.AdminDiscount))
	assert.True(t, sale.DiscountApplied, "la venta debe quedar marcada como aplicada")
}

// El descuento del bundle es el MÁXIMO de los descuentos de categoría de sus
// constituyentes (no la suma ni el promedio), aplicado sobre la suma de los
// precios sin descontar.
func TestApply_BundleUsaMaximoDescuento(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now, now.Add(time.Hour), map[string]int64{"catA": 10, "catB": 25})
	sale.Bundles = []string{"b1"}
	sale.Products = []string{"p1", "p2"}

	products := newFakeProductRepo(
		testProduct("p1", "catA", 100),
		testProduct("p2", "catB", 200),
	)
	bundles := newFakeBundleRepo(&entity.Bundle{
		ID:           "b1",
		ProductIDs:   []string{"p1", "p2"},
		SellingPrice: decimal.NewFromInt(300),
	})
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, bundles)

	res := uc.Apply(context.Background(), now)

	assert.Equal(t, 1, res.Bundles)
	assert.Equal(t, 2, res.Products)

	b1 := bundles.bundles["b1"]
	// max(10, 25) = 25 sobre 100+200 = 300 → 225. Si el total usara los
	// precios ya descontados (90+150) el resultado sería 180: el orden
	// bundles-antes-que-productos es el que evita eso.
	assert.True(t, decimal.NewFromInt(225).Equal(b1.SellingPrice), "esperado 225, obtenido %s", b1.SellingPrice)
	require.NotNil(t, b1.AdminDiscount)
	assert.True(t, decimal.NewFromInt(25).Equal(*b1.AdminDiscount), "el bundle toma el máximo, no la suma")

	assert.True(t, decimal.NewFromInt(90).Equal(products.products["p1"].SellingPrice))
	assert.True(t, decimal.NewFromInt(150).Equal(products.products["p2"].SellingPrice))
}

// Una venta fuera de la tolerancia de ±5s alrededor de start_date no se toca.
func TestApply_FueraDeVentanaNoSeToca(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now.Add(-30*time.Second), now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"p1"}

	products := newFakeProductRepo(testProduct("p1", "catA", 100))
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	res := uc.Apply(context.Background(), now)

	assert.Zero(t, res.Sales)
	assert.True(t, decimal.NewFromInt(100).Equal(products.products["p1"].SellingPrice))
	assert.Nil(t, products.products["p1"].AdminDiscount)
	assert.False(t, sale.DiscountApplied)
}

// discount_applied = true protege contra la doble aplicación: un segundo tick
// dentro de la misma ventana es un no-op.
func TestApply_SegundoTickEsNoOp(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now, now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"p1"}

	products := newFakeProductRepo(testProduct("p1", "catA", 100))
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	first := uc.Apply(context.Background(), now)
	second := uc.Apply(context.Background(), now.Add(time.Second))

	assert.Equal(t, 1, first.Sales)
	assert.Zero(t, second.Sales, "la segunda pasada no debe seleccionar la venta ya aplicada")
	assert.True(t, decimal.NewFromInt(80).Equal(products.products["p1"].SellingPrice),
		"el precio no debe descontarse dos veces")
}

// Producto sin categoría (o de una categoría ajena a la venta) recibe
// descuento 0: el precio no cambia pero admin_discount queda en 0, marcándolo
// como procesado por la venta.
func TestApply_ProductoSinCategoriaDescuentoCero(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now, now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"p1", "p2"}

	products := newFakeProductRepo(
		testProduct("p1", "", 100),    // sin categoría
		testProduct("p2", "catZ", 50), // categoría fuera de la venta
	)
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	uc.Apply(context.Background(), now)

	for _, id := range []string{"p1", "p2"} {
		p := products.products[id]
		require.NotNil(t, p.AdminDiscount, "producto %s debe quedar con descuento 0 explícito", id)
		assert.True(t, p.AdminDiscount.IsZero())
	}
	assert.True(t, decimal.NewFromInt(100).Equal(products.products["p1"].SellingPrice))
	assert.True(t, decimal.NewFromInt(50).Equal(products.products["p2"].SellingPrice))
}

// Referencias a productos o bundles inexistentes se registran y se omiten;
// el resto de la venta se procesa y la venta queda marcada igual.
func TestApply_ReferenciaInexistenteSeOmite(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now, now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"fantasma", "p1"}
	sale.Bundles = []string{"bundle-fantasma"}

	products := newFakeProductRepo(testProduct("p1", "catA", 100))
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	res := uc.Apply(context.Background(), now)

	assert.Equal(t, 2, res.Skipped, "producto y bundle inexistentes deben contarse como omitidos")
	assert.Equal(t, 1, res.Products)
	assert.True(t, decimal.NewFromInt(80).Equal(products.products["p1"].SellingPrice))
	assert.True(t, sale.DiscountApplied)
}

// Un fallo de persistencia en un producto no aborta a sus hermanos.
func TestApply_FalloEnUnaEntidadNoAbortaElResto(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now, now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"p1", "p2"}

	products := newFakeProductRepo(
		testProduct("p1", "catA", 100),
		testProduct("p2", "catA", 200),
	)
	products.saveErr["p1"] = assert.AnError
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	res := uc.Apply(context.Background(), now)

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Products)
	assert.True(t, decimal.NewFromInt(160).Equal(products.products["p2"].SellingPrice),
		"p2 debe procesarse aunque p1 haya fallado")
}

// Las ventas con soft-delete están congeladas: ningún predicado las devuelve.
func TestApply_VentaEliminadaNoSeSelecciona(t *testing.T) {
	now := time.Now()
	sale := testSale("s1", now, now.Add(time.Hour), map[string]int64{"catA": 20})
	sale.Products = []string{"p1"}
	sale.IsDeleted = true

	products := newFakeProductRepo(testProduct("p1", "catA", 100))
	saleRepo := &fakeSaleRepo{sales: []*entity.Sale{sale}}
	uc := newApplyUC(saleRepo, products, newFakeBundleRepo())

	res := uc.Apply(context.Background(), now)

	assert.Zero(t, res.Sales)
	assert.False(t, sale.DiscountApplied)
	assert.Nil(t, products.products["p1"].AdminDiscount)
}
