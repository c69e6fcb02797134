package admin

import (
	"context"

	"boomstore/internal/domain"
)

// ListUsers returns every account with its order count.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateUserRole changes a user's role. An admin may not demote their
// own account; the check runs before any write.
func (s *Service) UpdateUserRole(ctx context.Context, actorID, targetID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if actorID == targetID && role != domain.RoleAdmin {
		return nil, ErrSelfDemotion
	}
	return s.users.UpdateRole(ctx, targetID, role)
}
