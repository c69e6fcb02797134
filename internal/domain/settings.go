package domain

import "time"

// Settings is the single store-wide configuration record.
type Settings struct {
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Address            string    `json:"address,omitempty"`
	Currency           string    `json:"currency"`
	TaxRate            float64   `json:"taxRate"`
	ShippingEnabled    bool      `json:"shippingEnabled"`
	MaintenanceMode    bool      `json:"maintenanceMode"`
	AllowGuestCheckout bool      `json:"allowGuestCheckout"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
