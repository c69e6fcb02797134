package admin

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"boomstore/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// defaultSettings backs GET before the first write lands.
var defaultSettings = domain.Settings{
	Name:               "Boom Informatique",
	Description:        "Votre magasin d'informatique en ligne",
	Email:              "contact@boom-informatique.fr",
	Currency:           "EUR",
	TaxRate:            20,
	ShippingEnabled:    true,
	AllowGuestCheckout: true,
}

// GetSettings returns the stored settings record, or the defaults when
// none has been written yet.
func (s *Service) GetSettings(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			out := defaultSettings
			return &out, nil
		}
		return nil, err
	}
	return stored, nil
}

// UpdateSettings validates and persists the store settings.
func (s *Service) UpdateSettings(ctx context.Context, in domain.Settings) (*domain.Settings, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Currency) == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.TaxRate < 0 || in.TaxRate > 100 {
		return nil, ErrInvalidTaxRate
	}
	return s.settings.Update(ctx, in)
}
