package prodmatch

import (
	"github.com/dema-cloud/prodmatch/internal/domain/product"
	searchuc "github.com/dema-cloud/prodmatch/internal/usecase/search"
)

// Variant is a purchasable variation of a product.
type Variant struct {
	SKU   string
	Label string
}

// Product is a catalog record returned by the SDK.
type Product struct {
	SKU             string
	Name            string
	Brand           string
	Catalog         string
	Description     string
	Category        string
	Variants        []Variant
	ConnectionTypes []string

	Price   *float64
	InStock bool
	Rating  float64

	PDFSource   string
	SourcePages []int

	PressureMaxBar *float64
	VoltageV       *float64
	PowerKW        *float64
	PowerHP        *float64
	DimensionsMM   []float64
	Materials      []string

	Attributes map[string]string
}

// ScoredProduct pairs a product with its search match score.
type ScoredProduct struct {
	Product
	Score         float64
	MatchedFields []string
}

// Suggestion is a single typeahead entry.
type Suggestion struct {
	Type      string
	Value     string
	Highlight string
	Priority  int
	Category  string
	Count     int
	Display   string
}

// Recommendations holds a ranked product list and whether it was anchored
// on a product or a client profile.
type Recommendations struct {
	Items        []Product
	Personalized bool
}

func productFromInternal(p product.Product) Product {
	variants := make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = Variant{SKU: v.SKU, Label: v.Label}
	}
	return Product{
		SKU:             p.SKU,
		Name:            p.Name,
		Brand:           p.Brand,
		Catalog:         p.Catalog,
		Description:     p.Description,
		Category:        p.Category,
		Variants:        variants,
		ConnectionTypes: p.ConnectionTypes,
		Price:           p.Price,
		InStock:         p.InStock,
		Rating:          p.Rating,
		PDFSource:       p.PDFSource,
		SourcePages:     p.SourcePages,
		PressureMaxBar:  p.PressureMaxBar,
		VoltageV:        p.VoltageV,
		PowerKW:         p.PowerKW,
		PowerHP:         p.PowerHP,
		DimensionsMM:    p.DimensionsMM,
		Materials:       p.Materials,
		Attributes:      p.Attributes,
	}
}

func productsFromInternal(pp []product.Product) []Product {
	out := make([]Product, len(pp))
	for i, p := range pp {
		out[i] = productFromInternal(p)
	}
	return out
}

func suggestionFromInternal(s searchuc.Suggestion) Suggestion {
	return Suggestion{
		Type:      s.Type,
		Value:     s.Value,
		Highlight: s.Highlight,
		Priority:  s.Priority,
		Category:  s.Category,
		Count:     s.Count,
		Display:   s.Display,
	}
}
