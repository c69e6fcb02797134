package admin

import (
	"context"
	"fmt"
	"time"

	orderrepo "boomstore/internal/repository/order"
)

// Analytics is the back-office dashboard payload.
type Analytics struct {
	TotalRevenueCents int64                      `json:"totalRevenueCents"`
	TotalOrders       int                        `json:"totalOrders"`
	TotalProducts     int                        `json:"totalProducts"`
	TotalUsers        int                        `json:"totalUsers"`
	RevenueByMonth    []orderrepo.MonthlyRevenue `json:"revenueByMonth"`
	OrdersByStatus    []orderrepo.StatusCount    `json:"ordersByStatus"`
	TopProducts       []orderrepo.ProductSales   `json:"topProducts"`
	RecentActivity    []Activity                 `json:"recentActivity"`
}

// Activity is one entry in the recent-activity feed.
type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// GetAnalytics aggregates dashboard numbers for the requested range
// (7d, 30d, 90d, 1y; anything else falls back to 30d).
func (s *Service) GetAnalytics(ctx context.Context, rangeKey string) (*Analytics, error) {
	since := time.Now().Add(-rangeDuration(rangeKey))

	revenue, orderCount, err := s.orders.RevenueSince(ctx, since)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.orders.RevenueByMonth(ctx, since)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orders.CountByStatus(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.orders.TopProducts(ctx, since, 10)
	if err != nil {
		return nil, err
	}
	recent, err := s.orders.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	activity := make([]Activity, 0, len(recent))
	for _, o := range recent {
		who := o.UserID
		if o.User != nil {
			who = o.User.Email
			if o.User.Name != "" {
				who = o.User.Name
			}
		}
		activity = append(activity, Activity{
			Type:        "order",
			Description: fmt.Sprintf("New order from %s - %d.%02d", who, o.TotalCents/100, o.TotalCents%100),
			Date:        o.CreatedAt,
		})
	}

	return &Analytics{
		TotalRevenueCents: revenue,
		TotalOrders:       orderCount,
		TotalProducts:     productCount,
		TotalUsers:        userCount,
		RevenueByMonth:    byMonth,
		OrdersByStatus:    byStatus,
		TopProducts:       top,
		RecentActivity:    activity,
	}, nil
}

func rangeDuration(key string) time.Duration {
	switch key {
	case "7d":
		return 7 * 24 * time.Hour
	case "90d":
		return 90 * 24 * time.Hour
	case "1y":
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}
