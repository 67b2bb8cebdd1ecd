// Package product defines the catalog record scored by the matching engine.
package product

// Variant is a purchasable variation of a product (size, connection, etc.).
type Variant struct {
	SKU   string `json:"sku"`
	Label string `json:"label,omitempty"`
}

// Product is a catalog record. Every field except SKU is optional; the
// scorers treat a missing field as contributing nothing rather than as an
// error. Attributes carries extra key-value pairs that are displayed but
// never scored.
type Product struct {
	SKU             string    `json:"sku"`
	Name            string    `json:"name,omitempty"`
	Brand           string    `json:"brand,omitempty"`
	Catalog         string    `json:"catalog,omitempty"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"product_category,omitempty"`
	Variants        []Variant `json:"variants,omitempty"`
	ConnectionTypes []string  `json:"connection_types,omitempty"`

	Price   *float64 `json:"price,omitempty"`
	InStock bool     `json:"inStock"`
	Rating  float64  `json:"rating,omitempty"`

	// Provenance: which source document the record was extracted from.
	PDFSource   string `json:"pdf_source,omitempty"`
	SourcePages []int  `json:"source_pages,omitempty"`

	// Technical attributes used by the similarity ranker.
	PressureMaxBar *float64  `json:"pressure_max_bar,omitempty"`
	VoltageV       *float64  `json:"voltage_v,omitempty"`
	PowerKW        *float64  `json:"power_kw,omitempty"`
	PowerHP        *float64  `json:"power_hp,omitempty"`
	DimensionsMM   []float64 `json:"dimensions_mm_list,omitempty"`
	Materials      []string  `json:"materials,omitempty"`

	Attributes map[string]string `json:"attributes,omitempty"`
}

// SearchFields are the text fields that participate in fuzzy search by default.
var SearchFields = []string{"name", "sku", "catalog", "description", "product_category"}

// TextFields returns the product's string fields keyed by search field name.
// Empty fields are omitted so they contribute no matches.
func (p *Product) TextFields() map[string]string {
	fields := make(map[string]string, 5)
	put := func(k, v string) {
		if v != "" {
			fields[k] = v
		}
	}
	put("name", p.Name)
	put("sku", p.SKU)
	put("catalog", p.Catalog)
	put("description", p.Description)
	put("product_category", p.Category)
	return fields
}

// VariantFields returns one field map per variant for depth-1 traversal.
func (p *Product) VariantFields() []map[string]string {
	if len(p.Variants) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		fields := make(map[string]string, 2)
		if v.SKU != "" {
			fields["sku"] = v.SKU
		}
		if v.Label != "" {
			fields["label"] = v.Label
		}
		out = append(out, fields)
	}
	return out
}
