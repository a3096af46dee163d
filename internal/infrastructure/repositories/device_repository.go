package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/agrialert/domain"
)

// DeviceRepositoryImpl implements domain.DeviceRepository using GORM
type DeviceRepositoryImpl struct {
	db *gorm.DB
}

// DBDevice represents the database model for Device
type DBDevice struct {
	ID           uint   `gorm:"primaryKey"`
	SerialNumber string `gorm:"uniqueIndex;size:128"`
	Name         string `gorm:"size:255"`
	Status       string `gorm:"index;size:32"`
	FarmID       *uint  `gorm:"index"`
	FarmerID     *uint  `gorm:"index"`
	RegisteredAt time.Time
	LastSeenAt   *time.Time
}

func (DBDevice) TableName() string {
	return "devices"
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) domain.DeviceRepository {
	return &DeviceRepositoryImpl{db: db}
}

// Create implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) Create(ctx context.Context, device *domain.Device) error {
	dbDevice := deviceDomainToDB(device)
	if err := r.db.WithContext(ctx).Create(dbDevice).Error; err != nil {
		return err
	}
	device.ID = dbDevice.ID
	return nil
}

// FindByID implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Device, error) {
	var dbDevice DBDevice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbDevice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, err
	}
	return deviceDBToDomain(&dbDevice), nil
}

// FindBySerial implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) FindBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	var dbDevice DBDevice
	err := r.db.WithContext(ctx).Where("serial_number = ?", serial).First(&dbDevice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, err
	}
	return deviceDBToDomain(&dbDevice), nil
}

// ListAll implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) ListAll(ctx context.Context) ([]*domain.Device, error) {
	var dbDevices []DBDevice
	err := r.db.WithContext(ctx).Order("registered_at DESC").Find(&dbDevices).Error
	if err != nil {
		return nil, err
	}
	devices := make([]*domain.Device, 0, len(dbDevices))
	for i := range dbDevices {
		devices = append(devices, deviceDBToDomain(&dbDevices[i]))
	}
	return devices, nil
}

// ListByFarmer implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) ListByFarmer(ctx context.Context, farmerID uint) ([]*domain.Device, error) {
	var dbDevices []DBDevice
	err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("registered_at DESC").Find(&dbDevices).Error
	if err != nil {
		return nil, err
	}
	devices := make([]*domain.Device, 0, len(dbDevices))
	for i := range dbDevices {
		devices = append(devices, deviceDBToDomain(&dbDevices[i]))
	}
	return devices, nil
}

// Update implements domain.DeviceRepository
func (r *DeviceRepositoryImpl) Update(ctx context.Context, device *domain.Device) error {
	dbDevice := deviceDomainToDB(device)
	return r.db.WithContext(ctx).Save(dbDevice).Error
}

// Delete implements domain.DeviceRepository. Hard delete, admin-gated at the
// service layer.
func (r *DeviceRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBDevice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}

func deviceDomainToDB(device *domain.Device) *DBDevice {
	return &DBDevice{
		ID:           device.ID,
		SerialNumber: device.SerialNumber,
		Name:         device.Name,
		Status:       string(device.Status),
		FarmID:       device.FarmID,
		FarmerID:     device.FarmerID,
		RegisteredAt: device.RegisteredAt,
		LastSeenAt:   device.LastSeenAt,
	}
}

func deviceDBToDomain(dbDevice *DBDevice) *domain.Device {
	return &domain.Device{
		ID:           dbDevice.ID,
		SerialNumber: dbDevice.SerialNumber,
		Name:         dbDevice.Name,
		Status:       domain.DeviceStatus(dbDevice.Status),
		FarmID:       dbDevice.FarmID,
		FarmerID:     dbDevice.FarmerID,
		RegisteredAt: dbDevice.RegisteredAt,
		LastSeenAt:   dbDevice.LastSeenAt,
	}
}
