package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/agrialert/domain"
)

// DeviceServiceImpl implements domain.DeviceService. Creation, deletion and
// general updates are admin-only; a farmer may view and heartbeat devices
// linked to them.
type DeviceServiceImpl struct {
	deviceRepo domain.DeviceRepository
	accessSvc  domain.AccessService
	cache      domain.OwnershipCache
	now        func() time.Time
}

// NewDeviceService creates a new device service
func NewDeviceService(deviceRepo domain.DeviceRepository, accessSvc domain.AccessService, cache domain.OwnershipCache) domain.DeviceService {
	return &DeviceServiceImpl{
		deviceRepo: deviceRepo,
		accessSvc:  accessSvc,
		cache:      cache,
		now:        time.Now,
	}
}

// Create implements domain.DeviceService
func (s *DeviceServiceImpl) Create(ctx context.Context, auth domain.AuthContext, device *domain.Device) (*domain.Device, error) {
	if auth.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if device.SerialNumber == "" {
		return nil, domain.ErrSerialMissing
	}
	if existing, err := s.deviceRepo.FindBySerial(ctx, device.SerialNumber); err == nil && existing != nil {
		return nil, domain.ErrDuplicateSerial
	}
	if device.Status == "" {
		device.Status = domain.DeviceActive
	}
	if !device.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	device.RegisteredAt = s.now()

	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	return device, nil
}

// Get implements domain.DeviceService
func (s *DeviceServiceImpl) Get(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Device, error) {
	device, err := s.deviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessDevice(ctx, auth, device); err != nil {
		return nil, err
	}
	return device, nil
}

// List implements domain.DeviceService
func (s *DeviceServiceImpl) List(ctx context.Context, auth domain.AuthContext) ([]*domain.Device, error) {
	switch auth.Role {
	case domain.RoleAdmin:
		return s.deviceRepo.ListAll(ctx)
	case domain.RoleFarmer:
		return s.deviceRepo.ListByFarmer(ctx, auth.UserID)
	}
	return nil, domain.ErrForbidden
}

// Update implements domain.DeviceService. Reassigning the farmer link
// invalidates the cached ownership entry.
func (s *DeviceServiceImpl) Update(ctx context.Context, auth domain.AuthContext, id uint, in *domain.Device) (*domain.Device, error) {
	if auth.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	device, err := s.deviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		device.Name = in.Name
	}
	if in.Status != "" {
		if !in.Status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		device.Status = in.Status
	}
	reassigned := false
	if in.FarmID != nil {
		device.FarmID = in.FarmID
	}
	if in.FarmerID != nil {
		device.FarmerID = in.FarmerID
		reassigned = true
	}

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to update device: %w", err)
	}
	if reassigned {
		_ = s.cache.InvalidateDevice(ctx, id)
	}
	return device, nil
}

// Delete implements domain.DeviceService
func (s *DeviceServiceImpl) Delete(ctx context.Context, auth domain.AuthContext, id uint) error {
	if auth.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.deviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.InvalidateDevice(ctx, id)
	return nil
}

// Heartbeat implements domain.DeviceService. Admin or owning farmer stamps
// the last-seen time.
func (s *DeviceServiceImpl) Heartbeat(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Device, error) {
	device, err := s.deviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessDevice(ctx, auth, device); err != nil {
		return nil, err
	}

	seen := s.now()
	device.LastSeenAt = &seen
	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return device, nil
}
