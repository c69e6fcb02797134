// Package admin implements the back-office mutations: product CRUD,
// order status transitions, user role management, store settings, and
// analytics. Authorization happens upstream; every operation here
// assumes an admin caller.
package admin

import (
	"errors"

	categoryrepo "boomstore/internal/repository/category"
	orderrepo "boomstore/internal/repository/order"
	productrepo "boomstore/internal/repository/product"
	settingsrepo "boomstore/internal/repository/settings"
	userrepo "boomstore/internal/repository/user"
)

var (
	// ErrMissingFields is returned when a create/update payload lacks
	// required fields.
	ErrMissingFields = errors.New("missing required fields")
	// ErrSKUExists indicates the SKU is already taken by another product.
	ErrSKUExists = errors.New("SKU already exists")
	// ErrProductReferenced guards deletes of products present in orders.
	ErrProductReferenced = errors.New("cannot delete product that is referenced in orders")
	// ErrCategoryNotFound indicates the payload points at an unknown category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidStatus rejects unknown order statuses.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidRole rejects unknown user roles.
	ErrInvalidRole = errors.New("invalid role")
	// ErrSelfDemotion stops an admin from revoking their own admin role.
	ErrSelfDemotion = errors.New("cannot change your own admin role")
	// ErrInvalidEmail rejects malformed settings email addresses.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidTaxRate bounds the settings tax rate.
	ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 100")
)

type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
	orders     orderrepo.Repository
	users      userrepo.Repository
	settings   settingsrepo.Repository
}

func New(
	products productrepo.Repository,
	categories categoryrepo.Repository,
	orders orderrepo.Repository,
	users userrepo.Repository,
	settings settingsrepo.Repository,
) *Service {
	return &Service{
		products:   products,
		categories: categories,
		orders:     orders,
		users:      users,
		settings:   settings,
	}
}
