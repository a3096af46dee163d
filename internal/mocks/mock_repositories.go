package mocks

import (
	"context"

	"github.com/you/agrialert/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// MockFarmRepository implements domain.FarmRepository for testing
type MockFarmRepository struct {
	CreateFunc       func(ctx context.Context, farm *domain.Farm) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Farm, error)
	ListByFarmerFunc func(ctx context.Context, farmerID uint) ([]*domain.Farm, error)
	ListAllFunc      func(ctx context.Context) ([]*domain.Farm, error)
	UpdateFunc       func(ctx context.Context, farm *domain.Farm) error
}

func NewMockFarmRepository() *MockFarmRepository {
	return &MockFarmRepository{}
}

func (m *MockFarmRepository) Create(ctx context.Context, farm *domain.Farm) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, farm)
	}
	return nil
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uint) (*domain.Farm, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrFarmNotFound
}

func (m *MockFarmRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]*domain.Farm, error) {
	if m.ListByFarmerFunc != nil {
		return m.ListByFarmerFunc(ctx, farmerID)
	}
	return nil, nil
}

func (m *MockFarmRepository) ListAll(ctx context.Context) ([]*domain.Farm, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockFarmRepository) Update(ctx context.Context, farm *domain.Farm) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, farm)
	}
	return nil
}

// MockFieldRepository implements domain.FieldRepository for testing
type MockFieldRepository struct {
	CreateFunc     func(ctx context.Context, field *domain.Field) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Field, error)
	ListByFarmFunc func(ctx context.Context, farmID uint) ([]*domain.Field, error)
	UpdateFunc     func(ctx context.Context, field *domain.Field) error
}

func NewMockFieldRepository() *MockFieldRepository {
	return &MockFieldRepository{}
}

func (m *MockFieldRepository) Create(ctx context.Context, field *domain.Field) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, field)
	}
	return nil
}

func (m *MockFieldRepository) FindByID(ctx context.Context, id uint) (*domain.Field, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrFieldNotFound
}

func (m *MockFieldRepository) ListByFarm(ctx context.Context, farmID uint) ([]*domain.Field, error) {
	if m.ListByFarmFunc != nil {
		return m.ListByFarmFunc(ctx, farmID)
	}
	return nil, nil
}

func (m *MockFieldRepository) Update(ctx context.Context, field *domain.Field) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, field)
	}
	return nil
}

// MockDeviceRepository implements domain.DeviceRepository for testing
type MockDeviceRepository struct {
	CreateFunc       func(ctx context.Context, device *domain.Device) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Device, error)
	FindBySerialFunc func(ctx context.Context, serial string) (*domain.Device, error)
	ListAllFunc      func(ctx context.Context) ([]*domain.Device, error)
	ListByFarmerFunc func(ctx context.Context, farmerID uint) ([]*domain.Device, error)
	UpdateFunc       func(ctx context.Context, device *domain.Device) error
	DeleteFunc       func(ctx context.Context, id uint) error
}

func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{}
}

func (m *MockDeviceRepository) Create(ctx context.Context, device *domain.Device) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, device)
	}
	return nil
}

func (m *MockDeviceRepository) FindByID(ctx context.Context, id uint) (*domain.Device, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrDeviceNotFound
}

func (m *MockDeviceRepository) FindBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	if m.FindBySerialFunc != nil {
		return m.FindBySerialFunc(ctx, serial)
	}
	return nil, domain.ErrDeviceNotFound
}

func (m *MockDeviceRepository) ListAll(ctx context.Context) ([]*domain.Device, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockDeviceRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]*domain.Device, error) {
	if m.ListByFarmerFunc != nil {
		return m.ListByFarmerFunc(ctx, farmerID)
	}
	return nil, nil
}

func (m *MockDeviceRepository) Update(ctx context.Context, device *domain.Device) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, device)
	}
	return nil
}

func (m *MockDeviceRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAlertRepository implements domain.AlertRepository for testing
type MockAlertRepository struct {
	CreateFunc   func(ctx context.Context, alert *domain.Alert) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Alert, error)
	UpdateFunc   func(ctx context.Context, alert *domain.Alert) error
	ListFunc     func(ctx context.Context, scope domain.AlertScope, filter domain.AlertFilter) ([]*domain.Alert, error)
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{}
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, alert)
	}
	return nil
}

func (m *MockAlertRepository) FindByID(ctx context.Context, id uint) (*domain.Alert, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAlertNotFound
}

func (m *MockAlertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, alert)
	}
	return nil
}

func (m *MockAlertRepository) List(ctx context.Context, scope domain.AlertScope, filter domain.AlertFilter) ([]*domain.Alert, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, filter)
	}
	return nil, nil
}

// MockOwnershipCache implements domain.OwnershipCache for testing. The
// default behavior is a permanent miss, forcing the repository fallback.
type MockOwnershipCache struct {
	GetFarmOwnerFunc     func(ctx context.Context, farmID uint) (uint, bool, error)
	SetFarmOwnerFunc     func(ctx context.Context, farmID, farmerID uint) error
	GetDeviceOwnerFunc   func(ctx context.Context, deviceID uint) (uint, bool, error)
	SetDeviceOwnerFunc   func(ctx context.Context, deviceID, farmerID uint) error
	InvalidateDeviceFunc func(ctx context.Context, deviceID uint) error
}

func NewMockOwnershipCache() *MockOwnershipCache {
	return &MockOwnershipCache{}
}

func (m *MockOwnershipCache) GetFarmOwner(ctx context.Context, farmID uint) (uint, bool, error) {
	if m.GetFarmOwnerFunc != nil {
		return m.GetFarmOwnerFunc(ctx, farmID)
	}
	return 0, false, nil
}

func (m *MockOwnershipCache) SetFarmOwner(ctx context.Context, farmID, farmerID uint) error {
	if m.SetFarmOwnerFunc != nil {
		return m.SetFarmOwnerFunc(ctx, farmID, farmerID)
	}
	return nil
}

func (m *MockOwnershipCache) GetDeviceOwner(ctx context.Context, deviceID uint) (uint, bool, error) {
	if m.GetDeviceOwnerFunc != nil {
		return m.GetDeviceOwnerFunc(ctx, deviceID)
	}
	return 0, false, nil
}

func (m *MockOwnershipCache) SetDeviceOwner(ctx context.Context, deviceID, farmerID uint) error {
	if m.SetDeviceOwnerFunc != nil {
		return m.SetDeviceOwnerFunc(ctx, deviceID, farmerID)
	}
	return nil
}

func (m *MockOwnershipCache) InvalidateDevice(ctx context.Context, deviceID uint) error {
	if m.InvalidateDeviceFunc != nil {
		return m.InvalidateDeviceFunc(ctx, deviceID)
	}
	return nil
}
