package domain

import "time"

type Product struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Slug              string           `json:"slug"`
	Description       string           `json:"description,omitempty"`
	SKU               string           `json:"sku"`
	Brand             string           `json:"brand,omitempty"`
	PriceCents        int64            `json:"priceCents"`
	ComparePriceCents *int64           `json:"comparePriceCents,omitempty"`
	Stock             int              `json:"stock"`
	MinStock          int              `json:"minStock"`
	IsActive          bool             `json:"isActive"`
	IsFeatured        bool             `json:"isFeatured"`
	Warranty          string           `json:"warranty,omitempty"`
	CategoryID        string           `json:"categoryId"`
	Category          *Category        `json:"category,omitempty"`
	Images            []ProductImage   `json:"images,omitempty"`
	Variants          []ProductVariant `json:"variants,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

type ProductImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
	Position  int    `json:"position"`
}

type ProductVariant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	PriceCents *int64 `json:"priceCents,omitempty"`
	Stock      int    `json:"stock"`
}

// PrimaryImage returns the image flagged primary, falling back to the
// first image when none is flagged.
func (p Product) PrimaryImage() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
