package domain

import "time"

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ProductCount int       `json:"productCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
