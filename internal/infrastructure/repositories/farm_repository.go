package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/agrialert/domain"
)

// FarmRepositoryImpl implements domain.FarmRepository using GORM
type FarmRepositoryImpl struct {
	db *gorm.DB
}

// DBFarm represents the database model for Farm
type DBFarm struct {
	ID              uint   `gorm:"primaryKey"`
	FarmerID        uint   `gorm:"index"`
	Name            string `gorm:"size:255"`
	Address         string `gorm:"size:512"`
	Latitude        *float64
	Longitude       *float64
	BoundaryGeoJSON string `gorm:"column:boundary_geojson;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DBFarm) TableName() string {
	return "farms"
}

// NewFarmRepository creates a new farm repository
func NewFarmRepository(db *gorm.DB) domain.FarmRepository {
	return &FarmRepositoryImpl{db: db}
}

// Create implements domain.FarmRepository
func (r *FarmRepositoryImpl) Create(ctx context.Context, farm *domain.Farm) error {
	dbFarm := farmDomainToDB(farm)
	if err := r.db.WithContext(ctx).Create(dbFarm).Error; err != nil {
		return err
	}
	farm.ID = dbFarm.ID
	farm.CreatedAt = dbFarm.CreatedAt
	farm.UpdatedAt = dbFarm.UpdatedAt
	return nil
}

// FindByID implements domain.FarmRepository
func (r *FarmRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Farm, error) {
	var dbFarm DBFarm
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbFarm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrFarmNotFound
		}
		return nil, err
	}
	return farmDBToDomain(&dbFarm), nil
}

// ListByFarmer implements domain.FarmRepository
func (r *FarmRepositoryImpl) ListByFarmer(ctx context.Context, farmerID uint) ([]*domain.Farm, error) {
	var dbFarms []DBFarm
	err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("created_at DESC").Find(&dbFarms).Error
	if err != nil {
		return nil, err
	}
	farms := make([]*domain.Farm, 0, len(dbFarms))
	for i := range dbFarms {
		farms = append(farms, farmDBToDomain(&dbFarms[i]))
	}
	return farms, nil
}

// ListAll implements domain.FarmRepository
func (r *FarmRepositoryImpl) ListAll(ctx context.Context) ([]*domain.Farm, error) {
	var dbFarms []DBFarm
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbFarms).Error
	if err != nil {
		return nil, err
	}
	farms := make([]*domain.Farm, 0, len(dbFarms))
	for i := range dbFarms {
		farms = append(farms, farmDBToDomain(&dbFarms[i]))
	}
	return farms, nil
}

// Update implements domain.FarmRepository
func (r *FarmRepositoryImpl) Update(ctx context.Context, farm *domain.Farm) error {
	dbFarm := farmDomainToDB(farm)
	return r.db.WithContext(ctx).Save(dbFarm).Error
}

func farmDomainToDB(farm *domain.Farm) *DBFarm {
	return &DBFarm{
		ID:              farm.ID,
		FarmerID:        farm.FarmerID,
		Name:            farm.Name,
		Address:         farm.Address,
		Latitude:        farm.Latitude,
		Longitude:       farm.Longitude,
		BoundaryGeoJSON: farm.BoundaryGeoJSON,
		CreatedAt:       farm.CreatedAt,
	}
}

func farmDBToDomain(dbFarm *DBFarm) *domain.Farm {
	return &domain.Farm{
		ID:              dbFarm.ID,
		FarmerID:        dbFarm.FarmerID,
		Name:            dbFarm.Name,
		Address:         dbFarm.Address,
		Latitude:        dbFarm.Latitude,
		Longitude:       dbFarm.Longitude,
		BoundaryGeoJSON: dbFarm.BoundaryGeoJSON,
		CreatedAt:       dbFarm.CreatedAt,
		UpdatedAt:       dbFarm.UpdatedAt,
	}
}
