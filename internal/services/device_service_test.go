package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/mocks"
)

type deviceFixture struct {
	deviceRepo *mocks.MockDeviceRepository
	accessSvc  *mocks.MockAccessService
	cache      *mocks.MockOwnershipCache
	svc        *DeviceServiceImpl
	now        time.Time
}

func newDeviceFixture() *deviceFixture {
	f := &deviceFixture{
		deviceRepo: mocks.NewMockDeviceRepository(),
		accessSvc:  mocks.NewMockAccessService(),
		cache:      mocks.NewMockOwnershipCache(),
		now:        time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewDeviceService(f.deviceRepo, f.accessSvc, f.cache).(*DeviceServiceImpl)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestDeviceCreateAdminOnly(t *testing.T) {
	f := newDeviceFixture()

	device := &domain.Device{SerialNumber: "SN-1"}
	if _, err := f.svc.Create(context.Background(), farmerCtx, device); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Create() as farmer error = %v, want ErrForbidden", err)
	}

	created, err := f.svc.Create(context.Background(), adminCtx, device)
	if err != nil {
		t.Fatalf("Create() as admin error = %v", err)
	}
	if created.Status != domain.DeviceActive {
		t.Errorf("Status = %q, want active default", created.Status)
	}
	if !created.RegisteredAt.Equal(f.now) {
		t.Errorf("RegisteredAt = %v, want fixture clock", created.RegisteredAt)
	}
}

func TestDeviceCreateValidation(t *testing.T) {
	f := newDeviceFixture()

	if _, err := f.svc.Create(context.Background(), adminCtx, &domain.Device{}); !errors.Is(err, domain.ErrSerialMissing) {
		t.Errorf("Create() without serial error = %v, want ErrSerialMissing", err)
	}

	f.deviceRepo.FindBySerialFunc = func(ctx context.Context, serial string) (*domain.Device, error) {
		return &domain.Device{ID: 1, SerialNumber: serial}, nil
	}
	if _, err := f.svc.Create(context.Background(), adminCtx, &domain.Device{SerialNumber: "SN-1"}); !errors.Is(err, domain.ErrDuplicateSerial) {
		t.Errorf("Create() duplicate serial error = %v, want ErrDuplicateSerial", err)
	}
}

func TestDeviceUpdateReassignInvalidatesCache(t *testing.T) {
	f := newDeviceFixture()
	f.deviceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Device, error) {
		owner := uint(10)
		return &domain.Device{ID: id, SerialNumber: "SN-1", FarmerID: &owner}, nil
	}

	invalidated := []uint{}
	f.cache.InvalidateDeviceFunc = func(ctx context.Context, deviceID uint) error {
		invalidated = append(invalidated, deviceID)
		return nil
	}

	// A rename alone must not touch the cache.
	if _, err := f.svc.Update(context.Background(), adminCtx, 7, &domain.Device{Name: "renamed"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(invalidated) != 0 {
		t.Errorf("cache invalidated on rename, want untouched")
	}

	newOwner := uint(20)
	if _, err := f.svc.Update(context.Background(), adminCtx, 7, &domain.Device{FarmerID: &newOwner}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(invalidated) != 1 || invalidated[0] != 7 {
		t.Errorf("invalidated = %v, want [7] after reassignment", invalidated)
	}
}

func TestDeviceDelete(t *testing.T) {
	f := newDeviceFixture()

	if err := f.svc.Delete(context.Background(), farmerCtx, 7); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Delete() as farmer error = %v, want ErrForbidden", err)
	}

	invalidated := false
	f.cache.InvalidateDeviceFunc = func(ctx context.Context, deviceID uint) error {
		invalidated = true
		return nil
	}
	if err := f.svc.Delete(context.Background(), adminCtx, 7); err != nil {
		t.Fatalf("Delete() as admin error = %v", err)
	}
	if !invalidated {
		t.Error("cache not invalidated on delete")
	}

	f.deviceRepo.DeleteFunc = func(ctx context.Context, id uint) error {
		return domain.ErrDeviceNotFound
	}
	if err := f.svc.Delete(context.Background(), adminCtx, 99); !errors.Is(err, domain.ErrDeviceNotFound) {
		t.Errorf("Delete() missing device error = %v, want ErrDeviceNotFound", err)
	}
}

func TestDeviceHeartbeat(t *testing.T) {
	f := newDeviceFixture()
	f.deviceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Device, error) {
		owner := uint(10)
		return &domain.Device{ID: id, SerialNumber: "SN-1", FarmerID: &owner}, nil
	}

	device, err := f.svc.Heartbeat(context.Background(), farmerCtx, 7)
	if err != nil {
		t.Fatalf("Heartbeat() error = %v", err)
	}
	if device.LastSeenAt == nil || !device.LastSeenAt.Equal(f.now) {
		t.Errorf("LastSeenAt = %v, want fixture clock", device.LastSeenAt)
	}
}

func TestDeviceHeartbeatDenied(t *testing.T) {
	f := newDeviceFixture()
	f.deviceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Device, error) {
		return &domain.Device{ID: id, SerialNumber: "SN-1"}, nil
	}
	f.accessSvc.CanAccessDeviceFunc = func(ctx context.Context, auth domain.AuthContext, device *domain.Device) error {
		return domain.ErrForbidden
	}

	writes := 0
	f.deviceRepo.UpdateFunc = func(ctx context.Context, device *domain.Device) error {
		writes++
		return nil
	}
	if _, err := f.svc.Heartbeat(context.Background(), farmerCtx, 7); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Heartbeat() error = %v, want ErrForbidden", err)
	}
	if writes != 0 {
		t.Error("heartbeat written despite denial")
	}
}
