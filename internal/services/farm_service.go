package services

import (
	"context"
	"fmt"

	"github.com/you/agrialert/domain"
)

// FarmServiceImpl implements domain.FarmService
type FarmServiceImpl struct {
	farmRepo  domain.FarmRepository
	userRepo  domain.UserRepository
	accessSvc domain.AccessService
}

// NewFarmService creates a new farm service
func NewFarmService(farmRepo domain.FarmRepository, userRepo domain.UserRepository, accessSvc domain.AccessService) domain.FarmService {
	return &FarmServiceImpl{farmRepo: farmRepo, userRepo: userRepo, accessSvc: accessSvc}
}

// Create implements domain.FarmService. A farmer creates farms for
// themselves; an admin may create a farm for any farmer. Ownership is fixed
// at creation.
func (s *FarmServiceImpl) Create(ctx context.Context, auth domain.AuthContext, farm *domain.Farm) (*domain.Farm, error) {
	switch auth.Role {
	case domain.RoleFarmer:
		farm.FarmerID = auth.UserID
	case domain.RoleAdmin:
		if farm.FarmerID == 0 {
			return nil, domain.ErrFarmerIDMissing
		}
		owner, err := s.userRepo.FindByID(ctx, farm.FarmerID)
		if err != nil {
			return nil, err
		}
		if owner.Role != domain.RoleFarmer {
			return nil, domain.ErrInvalidRole
		}
	default:
		return nil, domain.ErrForbidden
	}

	if err := s.farmRepo.Create(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to create farm: %w", err)
	}
	return farm, nil
}

// Get implements domain.FarmService
func (s *FarmServiceImpl) Get(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Farm, error) {
	farm, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessFarm(ctx, auth, farm); err != nil {
		return nil, err
	}
	return farm, nil
}

// List implements domain.FarmService
func (s *FarmServiceImpl) List(ctx context.Context, auth domain.AuthContext) ([]*domain.Farm, error) {
	switch auth.Role {
	case domain.RoleAdmin:
		return s.farmRepo.ListAll(ctx)
	case domain.RoleFarmer:
		return s.farmRepo.ListByFarmer(ctx, auth.UserID)
	}
	return nil, domain.ErrForbidden
}

// Update implements domain.FarmService. The owner reference is immutable;
// incoming values for it are discarded.
func (s *FarmServiceImpl) Update(ctx context.Context, auth domain.AuthContext, id uint, in *domain.Farm) (*domain.Farm, error) {
	farm, err := s.farmRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessFarm(ctx, auth, farm); err != nil {
		return nil, err
	}

	if in.Name != "" {
		farm.Name = in.Name
	}
	if in.Address != "" {
		farm.Address = in.Address
	}
	if in.Latitude != nil {
		farm.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		farm.Longitude = in.Longitude
	}
	if in.BoundaryGeoJSON != "" {
		farm.BoundaryGeoJSON = in.BoundaryGeoJSON
	}

	if err := s.farmRepo.Update(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to update farm: %w", err)
	}
	return farm, nil
}
