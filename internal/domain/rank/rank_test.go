package rank

import (
	"testing"

	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

func testPool() []product.Product {
	return []product.Product{
		{SKU: "BP001", Category: "bronpompen", Rating: 4.5, InStock: true, Price: f64(250)},
		{SKU: "BP002", Category: "bronpompen", Rating: 4.0, InStock: true, Price: f64(199)},
		{SKU: "DP001", Category: "dompelpompen", Rating: 4.8, InStock: false, Price: f64(120)},
		{SKU: "PE050", Category: "pe_buizen", Rating: 3.0, InStock: true},
	}
}

func TestSimilar_ExcludesAnchor(t *testing.T) {
	pool := testPool()
	anchor := &pool[0]

	got := Similar(pool, anchor, NewRequest(12, "", "", false))
	for _, p := range got {
		if p.SKU == anchor.SKU {
			t.Fatalf("anchor %s present in results", anchor.SKU)
		}
	}
	if len(got) != 3 {
		t.Errorf("got %d results, want 3", len(got))
	}
}

func TestSimilar_SameCategoryFirst(t *testing.T) {
	pool := testPool()
	anchor := &pool[0]

	got := Similar(pool, anchor, NewRequest(12, "", "", false))
	if got[0].SKU != "BP002" {
		t.Errorf("top result = %s, want BP002 (same category)", got[0].SKU)
	}
}

func TestSimilar_CategoryFilter(t *testing.T) {
	pool := testPool()
	anchor := &pool[0]

	got := Similar(pool, anchor, NewRequest(12, "dompelpompen", "", false))
	if len(got) != 1 || got[0].SKU != "DP001" {
		t.Errorf("got %v, want only DP001", skus(got))
	}
}

func TestSimilar_TieBreakChain(t *testing.T) {
	// All candidates score identically against an attribute-free anchor, so
	// ordering falls through rating, stock, then price.
	anchor := &product.Product{SKU: "X"}
	pool := []product.Product{
		{SKU: "low-rated", Rating: 3.0, InStock: true, Price: f64(10)},
		{SKU: "no-price", Rating: 4.0, InStock: true},
		{SKU: "cheap", Rating: 4.0, InStock: true, Price: f64(50)},
		{SKU: "out-of-stock", Rating: 4.0, InStock: false, Price: f64(1)},
	}

	got := Similar(pool, anchor, NewRequest(12, "", "", false))
	want := []string{"cheap", "no-price", "out-of-stock", "low-rated"}
	assertOrder(t, got, want)
}

func TestSimilar_NilAnchorFallsBack(t *testing.T) {
	got := Similar(testPool(), nil, NewRequest(12, "", "", false))
	// Rating order: DP001 4.8, BP001 4.5, BP002 4.0, PE050 3.0.
	assertOrder(t, got, []string{"DP001", "BP001", "BP002", "PE050"})
}

func TestPopular_PreferredCategoryPartition(t *testing.T) {
	got := Popular(testPool(), NewRequest(12, "", "pe_buizen", true))
	if got[0].SKU != "PE050" {
		t.Errorf("top result = %s, want PE050 (preferred category)", got[0].SKU)
	}
	// Remainder keeps pool order.
	assertOrder(t, got, []string{"PE050", "BP001", "BP002", "DP001"})
}

func TestPopular_PreferredCategoryIgnoredWithoutPersonalization(t *testing.T) {
	got := Popular(testPool(), NewRequest(12, "", "pe_buizen", false))
	assertOrder(t, got, []string{"DP001", "BP001", "BP002", "PE050"})
}

func TestSimilar_Truncates(t *testing.T) {
	pool := testPool()
	got := Similar(pool, &pool[0], NewRequest(2, "", "", false))
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestNewRequest_ClampsLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{1, 1},
		{12, 12},
		{500, MaxLimit},
	}
	for _, c := range cases {
		if got := NewRequest(c.in, "", "", false); got.Limit() != c.want {
			t.Errorf("NewRequest(limit=%d).Limit() = %d, want %d", c.in, got.Limit(), c.want)
		}
	}
}

func skus(ps []product.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.SKU
	}
	return out
}

func assertOrder(t *testing.T, got []product.Product, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d results %v, want %d", len(got), skus(got), len(want))
	}
	for i := range want {
		if got[i].SKU != want[i] {
			t.Fatalf("order = %v, want %v", skus(got), want)
		}
	}
}
