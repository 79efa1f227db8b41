package services

import (
	"context"

	"github.com/dmitrijs2005/dndadmin/internal/client/client"
	"github.com/dmitrijs2005/dndadmin/internal/client/models"
)

// AdminService wraps the authenticated administration calls.
type AdminService interface {
	Profile(ctx context.Context) (*models.Profile, error)
	// Users returns every account ordered by ID.
	Users(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, userID int, role string) error
	UpdateStatus(ctx context.Context, userID int, isActive bool) error
}

type adminService struct {
	client client.Client
}

func NewAdminService(c client.Client) AdminService {
	return &adminService{client: c}
}

func (s *adminService) Profile(ctx context.Context) (*models.Profile, error) {
	return s.client.CurrentProfile(ctx)
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	models.SortByID(users)
	return users, nil
}

func (s *adminService) UpdateRole(ctx context.Context, userID int, role string) error {
	return s.client.UpdateUserRole(ctx, userID, role)
}

func (s *adminService) UpdateStatus(ctx context.Context, userID int, isActive bool) error {
	return s.client.UpdateUserStatus(ctx, userID, isActive)
}
