// Package catalog provides the product catalog data model and loading.
//
// The catalog is a flat JSON file of product records produced offline.
// This package only reads it; products are immutable once loaded.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Brands is the fixed set of brands carried in the catalog.
var Brands = []string{"Zara", "Levi's", "H&M", "Uniqlo", "Adidas"}

// Categories is the fixed set of product categories.
var Categories = []string{"dresses", "pants", "shirts", "sweaters", "t-shirts", "skirts", "jackets"}

// Product is a single catalog record. The ID is the stable join key between
// the catalog file and the vector index payload and must round-trip
// unchanged.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Color       string   `json:"color"`
	Material    string   `json:"material"`
	Size        []string `json:"size"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
}

// Load reads and validates a catalog JSON file.
func Load(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
	}

	return products, nil
}

// Validate checks the invariants a product record must satisfy.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %q: missing name", p.ID)
	}
	if !slices.Contains(Brands, p.Brand) {
		return fmt.Errorf("product %q: unknown brand %q", p.ID, p.Brand)
	}
	if !slices.Contains(Categories, p.Category) {
		return fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %q: negative price %v", p.ID, p.Price)
	}
	return nil
}

// EmbeddingText composes the text that gets embedded for a product. The
// shape (name, description, material, color) is what the index was built
// with, so query vectors land in the same space.
func (p Product) EmbeddingText() string {
	return fmt.Sprintf("%s. %s Material: %s. Color: %s.", p.Name, p.Description, p.Material, p.Color)
}

// Payload is the metadata stored alongside a product's vector and returned
// on query.
func (p Product) Payload() map[string]any {
	sizes := make([]any, len(p.Size))
	for i, s := range p.Size {
		sizes[i] = s
	}

	payload := map[string]any{
		"product_id":  p.ID,
		"name":        p.Name,
		"category":    p.Category,
		"brand":       p.Brand,
		"price":       p.Price,
		"color":       p.Color,
		"material":    p.Material,
		"size":        sizes,
		"description": p.Description,
	}
	if p.URL != "" {
		payload["url"] = p.URL
	}
	return payload
}
