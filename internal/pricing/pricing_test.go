package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"shreekara.in/catalog-web/internal/catalog"
)

func amt(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

func TestClassify(t *testing.T) {
	require.Equal(t, ShapeDiscounted, Classify(catalog.Variant{MRP: amt(500), OfferPrice: amt(400), Price: amt(1)}).Shape)
	require.Equal(t, ShapeFlat, Classify(catalog.Variant{Price: amt(300)}).Shape)
	require.Equal(t, ShapeQuote, Classify(catalog.Variant{}).Shape)
	require.Equal(t, ShapeQuote, Classify(catalog.Variant{MRP: amt(500)}).Shape)
}

func TestResolveDiscounted(t *testing.T) {
	p := catalog.Product{ID: "beta", Variants: []catalog.Variant{
		{ID: "b1", Label: "Tube", MRP: amt(500), OfferPrice: amt(400)},
	}}
	q, ok := Resolve(p, "b1")
	require.True(t, ok)
	require.Equal(t, "₹400", q.Price)
	require.Equal(t, "₹500", q.Strike)
	require.Equal(t, "20% OFF", q.Badge)
	require.Equal(t, ActionPurchase, q.Action)
	require.Empty(t, q.QuoteURL)
}

func TestResolveRoundsDiscount(t *testing.T) {
	p := catalog.Product{ID: "x", Variants: []catalog.Variant{
		{ID: "v", MRP: amt(4200), OfferPrice: amt(3570)},
	}}
	q, _ := Resolve(p, "v")
	require.Equal(t, "15% OFF", q.Badge)

	p.Variants[0] = catalog.Variant{ID: "v", MRP: amt(3), OfferPrice: amt(2)}
	q, _ = Resolve(p, "v")
	require.Equal(t, "33% OFF", q.Badge)

	// exactly half a percent rounds up
	p.Variants[0] = catalog.Variant{ID: "v", MRP: amt(200), OfferPrice: amt(199)}
	q, _ = Resolve(p, "v")
	require.Equal(t, "1% OFF", q.Badge)
	require.Equal(t, "₹200", q.Strike)

	p.Variants[0] = catalog.Variant{ID: "v", MRP: amt(1000), OfferPrice: amt(995)}
	q, _ = Resolve(p, "v")
	require.Equal(t, "1% OFF", q.Badge)
}

func TestResolveOfferEqualToMRPHasNoBadge(t *testing.T) {
	p := catalog.Product{ID: "x", Variants: []catalog.Variant{
		{ID: "v", MRP: amt(500), OfferPrice: amt(500)},
	}}
	q, ok := Resolve(p, "v")
	require.True(t, ok)
	require.Equal(t, ShapeDiscounted, q.Shape)
	require.Equal(t, "₹500", q.Price)
	require.Empty(t, q.Badge)
	require.Empty(t, q.Strike)
	require.Equal(t, ActionPurchase, q.Action)

	_, ok = DiscountPercent(decimal.NewFromInt(500), decimal.NewFromInt(500))
	require.False(t, ok)
}

func TestResolveOfferWithoutDiscount(t *testing.T) {
	p := catalog.Product{ID: "x", Variants: []catalog.Variant{
		{ID: "v", OfferPrice: amt(400)},
		{ID: "w", MRP: amt(300), OfferPrice: amt(400)},
	}}
	for _, id := range []string{"v", "w"} {
		q, _ := Resolve(p, id)
		require.Equal(t, "₹400", q.Price)
		require.Empty(t, q.Badge)
		require.Empty(t, q.Strike)
	}
}

func TestResolveFlatAndQuote(t *testing.T) {
	p := catalog.Product{ID: "gamma unit", Variants: []catalog.Variant{
		{ID: "flat", Price: amt(1500)},
		{ID: "none"},
	}}
	q, _ := Resolve(p, "flat")
	require.Equal(t, "₹1,500", q.Price)
	require.Empty(t, q.Badge)
	require.Equal(t, ActionPurchase, q.Action)

	q, _ = Resolve(p, "none")
	require.Empty(t, q.Price)
	require.Equal(t, ActionQuote, q.Action)
	require.Equal(t, "/contact?product=gamma+unit", q.QuoteURL)
}

func TestResolveFallsBackToFirstVariant(t *testing.T) {
	p := catalog.Product{ID: "x", Variants: []catalog.Variant{
		{ID: "first", Price: amt(10)},
		{ID: "second", Price: amt(20)},
	}}
	q, ok := Resolve(p, "unknown")
	require.True(t, ok)
	require.Equal(t, "first", q.VariantID)

	_, ok = Resolve(catalog.Product{ID: "empty"}, "")
	require.False(t, ok)
}

func TestCardPrice(t *testing.T) {
	same := catalog.Product{Variants: []catalog.Variant{{Price: amt(300)}, {Price: amt(300)}, {Price: amt(300)}}}
	got, ok := CardPrice(same)
	require.True(t, ok)
	require.Equal(t, "₹300", got)

	spread := catalog.Product{Variants: []catalog.Variant{{Price: amt(500)}, {Price: amt(300)}}}
	got, ok = CardPrice(spread)
	require.True(t, ok)
	require.Equal(t, "₹300 — ₹500", got)

	mixed := catalog.Product{Variants: []catalog.Variant{{MRP: amt(2500), OfferPrice: amt(2000)}, {}, {Price: amt(900)}}}
	got, ok = CardPrice(mixed)
	require.True(t, ok)
	require.Equal(t, "₹900 — ₹2,000", got)

	_, ok = CardPrice(catalog.Product{Variants: []catalog.Variant{{}, {}}})
	require.False(t, ok)
	_, ok = CardPrice(catalog.Product{})
	require.False(t, ok)
}

func TestPurchasable(t *testing.T) {
	require.True(t, Purchasable(catalog.Product{Variants: []catalog.Variant{{}, {Price: amt(1)}}}))
	require.False(t, Purchasable(catalog.Product{Variants: []catalog.Variant{{}}}))
	require.False(t, Purchasable(catalog.Product{}))
}
