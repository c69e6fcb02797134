package order

import (
	"context"
	"time"

	"boomstore/internal/domain"
)

// MonthlyRevenue aggregates revenue and order volume per calendar month.
type MonthlyRevenue struct {
	Month        time.Time `json:"month"`
	RevenueCents int64     `json:"revenueCents"`
	Orders       int       `json:"orders"`
}

// StatusCount is the number of orders currently in a status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ProductSales ranks products by units sold.
type ProductSales struct {
	Name         string `json:"name"`
	Sold         int    `json:"sold"`
	RevenueCents int64  `json:"revenueCents"`
}

type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	RevenueSince(ctx context.Context, since time.Time) (int64, int, error)
	RevenueByMonth(ctx context.Context, since time.Time) ([]MonthlyRevenue, error)
	CountByStatus(ctx context.Context, since time.Time) ([]StatusCount, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]ProductSales, error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
}
