package search

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dema-cloud/prodmatch/internal/domain/product"
)

func TestSuggest_EmptyQuery(t *testing.T) {
	svc := newTestService(nil)

	got, err := svc.Suggest(context.Background(), "   ", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d suggestions for blank query, want 0", len(got))
	}
}

func TestSuggest_SKUBeforeCategoryBeforeDescription(t *testing.T) {
	svc := newTestService(nil)

	got, err := svc.Suggest(context.Background(), "pe", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no suggestions")
	}
	last := 0
	for _, s := range got {
		if s.Priority < last {
			t.Fatalf("suggestions not sorted by priority: %+v", got)
		}
		last = s.Priority
	}
	if got[0].Type != TypeSKU || got[0].Value != "PE050" {
		t.Errorf("first suggestion = %+v, want sku PE050", got[0])
	}
}

func TestSuggest_CategoryCount(t *testing.T) {
	svc := newTestService(nil)

	got, err := svc.Suggest(context.Background(), "bronpompen", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	var cat *Suggestion
	for i := range got {
		if got[i].Type == TypeCategory {
			cat = &got[i]
			break
		}
	}
	if cat == nil {
		t.Fatalf("no category suggestion in %+v", got)
	}
	if cat.Value != "bronpompen" || cat.Count != 1 {
		t.Errorf("category suggestion = %+v, want bronpompen with count 1", *cat)
	}
}

func TestSuggest_CategoryTypoFallback(t *testing.T) {
	svc := newTestService(nil)

	// "bronpompn" is not a substring of any category but is one edit away
	// from bronpompen.
	got, err := svc.Suggest(context.Background(), "bronpompn", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	found := false
	for _, s := range got {
		if s.Type == TypeCategory && s.Value == "bronpompen" {
			found = true
		}
	}
	if !found {
		t.Errorf("fuzzy fallback missed bronpompen: %+v", got)
	}
}

func TestSuggest_DescriptionSnippet(t *testing.T) {
	svc := newTestService(nil)

	got, err := svc.Suggest(context.Background(), "waterleiding", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	var desc *Suggestion
	for i := range got {
		if got[i].Type == TypeDescription {
			desc = &got[i]
			break
		}
	}
	if desc == nil {
		t.Fatalf("no description suggestion in %+v", got)
	}
	if desc.Value != "PE050" {
		t.Errorf("description suggestion value = %q, want PE050", desc.Value)
	}
	if !strings.Contains(desc.Display, "waterleiding") {
		t.Errorf("snippet %q does not contain the query", desc.Display)
	}
	if !strings.HasPrefix(desc.Display, "...") {
		t.Errorf("snippet %q should start with ellipsis, match is mid-text", desc.Display)
	}
	if !strings.Contains(desc.Highlight, "<mark>waterleiding</mark>") {
		t.Errorf("highlight %q missing marked query", desc.Highlight)
	}
}

func TestSuggest_PerTypeCap(t *testing.T) {
	var pool []product.Product
	for _, sku := range []string{"X1", "X2", "X3", "X4", "X5", "X6", "X7"} {
		pool = append(pool, product.Product{SKU: sku, Name: sku, Category: "misc"})
	}
	svc := New(&mockCatalog{products: pool}, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "x", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	skus := 0
	for _, s := range got {
		if s.Type == TypeSKU {
			skus++
		}
	}
	if skus != PerTypeCap {
		t.Errorf("got %d sku suggestions, want cap %d", skus, PerTypeCap)
	}
}

func TestSuggest_Limit(t *testing.T) {
	svc := newTestService(nil)

	got, err := svc.Suggest(context.Background(), "p", 2)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) > 2 {
		t.Errorf("got %d suggestions, want at most 2", len(got))
	}
}

func TestSuggest_CategoriesKeepCountOrder(t *testing.T) {
	// "alfa-pompen" sorts before "beta-pompen" alphabetically but has fewer
	// products; the merged list must keep the count-descending category order.
	pool := []product.Product{
		{SKU: "B1", Name: "Beta 1", Category: "beta-pompen"},
		{SKU: "B2", Name: "Beta 2", Category: "beta-pompen"},
		{SKU: "B3", Name: "Beta 3", Category: "beta-pompen"},
		{SKU: "A1", Name: "Alfa 1", Category: "alfa-pompen"},
	}
	svc := New(&mockCatalog{products: pool}, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "pompen", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	var cats []Suggestion
	for _, s := range got {
		if s.Type == TypeCategory {
			cats = append(cats, s)
		}
	}
	if len(cats) != 2 {
		t.Fatalf("got %d category suggestions, want 2: %+v", len(cats), got)
	}
	if cats[0].Value != "beta-pompen" || cats[1].Value != "alfa-pompen" {
		t.Errorf("categories = %s, %s; want beta-pompen first (3 products vs 1)",
			cats[0].Value, cats[1].Value)
	}
}

func TestSuggest_WithSuggestionLimit(t *testing.T) {
	svc := newTestService(nil).WithSuggestionLimit(1)

	got, err := svc.Suggest(context.Background(), "p", 50)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d suggestions, want the configured cap of 1", len(got))
	}
}

func TestSuggest_MultibyteDescriptionSnippet(t *testing.T) {
	// The rune İ shrinks when lowercased, so snippet offsets computed in the
	// lowered description land inside runes of the original.
	pool := []product.Product{{
		SKU:         "TR010",
		Name:        "Boiler",
		Category:    "boilers",
		Description: "İİİİİİİ İİİİİİİ İİİİİİİ waterleiding aansluiting",
	}}
	svc := New(&mockCatalog{products: pool}, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "waterleiding", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	var desc *Suggestion
	for i := range got {
		if got[i].Type == TypeDescription {
			desc = &got[i]
			break
		}
	}
	if desc == nil {
		t.Fatalf("no description suggestion in %+v", got)
	}
	if !utf8.ValidString(desc.Display) || !utf8.ValidString(desc.Highlight) {
		t.Fatalf("snippet is not valid UTF-8: %q / %q", desc.Display, desc.Highlight)
	}
	if !strings.Contains(desc.Display, "waterleiding") {
		t.Errorf("snippet %q does not contain the query", desc.Display)
	}
	if !strings.Contains(desc.Highlight, "<mark>waterleiding</mark>") {
		t.Errorf("highlight %q missing marked query", desc.Highlight)
	}
}
