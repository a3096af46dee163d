package services

import (
	"context"
	"fmt"

	"github.com/you/agrialert/domain"
)

// farmerAllowedTargetStatuses is the explicit transition table for farmers:
// the only statuses a farmer may move an alert to, regardless of its current
// status. Admins are unrestricted. Any role absent from alertUpdateRules is
// denied outright.
var farmerAllowedTargetStatuses = map[domain.AlertStatus]bool{
	domain.StatusAcknowledged: true,
	domain.StatusClosed:       true,
}

type alertUpdateRule struct {
	anyField       bool
	targetStatuses map[domain.AlertStatus]bool
}

var alertUpdateRules = map[string]alertUpdateRule{
	domain.RoleAdmin:  {anyField: true},
	domain.RoleFarmer: {targetStatuses: farmerAllowedTargetStatuses},
}

// AccessServiceImpl implements domain.AccessService. Ownership-chain lookups
// (farm -> farmer, device -> farmer) go through the cache with a repository
// fallback.
type AccessServiceImpl struct {
	farmRepo   domain.FarmRepository
	fieldRepo  domain.FieldRepository
	deviceRepo domain.DeviceRepository
	cache      domain.OwnershipCache
}

// NewAccessService creates a new role/ownership authorizer
func NewAccessService(
	farmRepo domain.FarmRepository,
	fieldRepo domain.FieldRepository,
	deviceRepo domain.DeviceRepository,
	cache domain.OwnershipCache,
) domain.AccessService {
	return &AccessServiceImpl{
		farmRepo:   farmRepo,
		fieldRepo:  fieldRepo,
		deviceRepo: deviceRepo,
		cache:      cache,
	}
}

// CanViewAlert implements domain.AccessService. A farmer sees an alert when
// related through any reference: directly, via an owned farm, via an owned
// device, or via a field of an owned farm.
func (s *AccessServiceImpl) CanViewAlert(ctx context.Context, auth domain.AuthContext, alert *domain.Alert) error {
	switch auth.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleFarmer:
	default:
		return domain.ErrForbidden
	}

	if alert.FarmerID != nil && *alert.FarmerID == auth.UserID {
		return nil
	}
	if alert.FarmID != nil {
		owner, err := s.FarmOwner(ctx, *alert.FarmID)
		if err == nil && owner == auth.UserID {
			return nil
		}
	}
	if alert.DeviceID != nil {
		owner, err := s.DeviceOwner(ctx, *alert.DeviceID)
		if err == nil && owner == auth.UserID {
			return nil
		}
	}
	if alert.FieldID != nil {
		field, err := s.fieldRepo.FindByID(ctx, *alert.FieldID)
		if err == nil {
			owner, err := s.FarmOwner(ctx, field.FarmID)
			if err == nil && owner == auth.UserID {
				return nil
			}
		}
	}
	return domain.ErrForbidden
}

// ValidateAlertUpdate implements domain.AccessService. The decision is taken
// before any write: a farmer update carrying anything besides status is
// rejected whole.
func (s *AccessServiceImpl) ValidateAlertUpdate(auth domain.AuthContext, update *domain.AlertUpdate) error {
	rule, ok := alertUpdateRules[auth.Role]
	if !ok {
		return domain.ErrForbidden
	}
	if rule.anyField {
		return nil
	}
	if update.ChangesBesidesStatus() {
		return domain.ErrForbidden
	}
	if update.Status == nil {
		return domain.ErrForbidden
	}
	if !rule.targetStatuses[*update.Status] {
		return domain.ErrForbidden
	}
	return nil
}

// CanAccessFarm implements domain.AccessService
func (s *AccessServiceImpl) CanAccessFarm(ctx context.Context, auth domain.AuthContext, farm *domain.Farm) error {
	switch auth.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleFarmer:
		if farm.FarmerID == auth.UserID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// CanAccessField implements domain.AccessService. Field ownership resolves
// transitively through the owning farm.
func (s *AccessServiceImpl) CanAccessField(ctx context.Context, auth domain.AuthContext, field *domain.Field) error {
	switch auth.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleFarmer:
		owner, err := s.FarmOwner(ctx, field.FarmID)
		if err != nil {
			return err
		}
		if owner == auth.UserID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// CanAccessDevice implements domain.AccessService
func (s *AccessServiceImpl) CanAccessDevice(ctx context.Context, auth domain.AuthContext, device *domain.Device) error {
	switch auth.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleFarmer:
		if device.FarmerID != nil && *device.FarmerID == auth.UserID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// AlertScopeFor implements domain.AccessService. Admins are unrestricted;
// everyone else is confined to their own ownership chain. Unknown roles get
// a scope over a nonexistent farmer, matching nothing.
func (s *AccessServiceImpl) AlertScopeFor(auth domain.AuthContext) domain.AlertScope {
	if auth.Role == domain.RoleAdmin {
		return domain.AlertScope{Unrestricted: true}
	}
	if auth.Role == domain.RoleFarmer {
		return domain.AlertScope{FarmerID: auth.UserID}
	}
	return domain.AlertScope{FarmerID: 0}
}

// FarmOwner implements domain.AccessService
func (s *AccessServiceImpl) FarmOwner(ctx context.Context, farmID uint) (uint, error) {
	if owner, ok, err := s.cache.GetFarmOwner(ctx, farmID); err == nil && ok {
		return owner, nil
	}
	farm, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetFarmOwner(ctx, farmID, farm.FarmerID); err != nil {
		// Cache write failure is not a decision failure.
		return farm.FarmerID, nil
	}
	return farm.FarmerID, nil
}

// DeviceOwner implements domain.AccessService
func (s *AccessServiceImpl) DeviceOwner(ctx context.Context, deviceID uint) (uint, error) {
	if owner, ok, err := s.cache.GetDeviceOwner(ctx, deviceID); err == nil && ok {
		return owner, nil
	}
	device, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	if device.FarmerID == nil {
		return 0, fmt.Errorf("device %d has no farmer: %w", deviceID, domain.ErrForbidden)
	}
	if err := s.cache.SetDeviceOwner(ctx, deviceID, *device.FarmerID); err != nil {
		return *device.FarmerID, nil
	}
	return *device.FarmerID, nil
}
