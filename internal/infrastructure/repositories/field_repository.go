package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/agrialert/domain"
)

// FieldRepositoryImpl implements domain.FieldRepository using GORM
type FieldRepositoryImpl struct {
	db *gorm.DB
}

// DBField represents the database model for Field
type DBField struct {
	ID               uint   `gorm:"primaryKey"`
	FarmID           uint   `gorm:"index"`
	Name             string `gorm:"size:255"`
	CropType         string `gorm:"size:128"`
	PlantingDate     *time.Time
	SoilType         string `gorm:"size:128"`
	IrrigationMethod string `gorm:"size:128"`
	BoundaryGeoJSON  string `gorm:"column:boundary_geojson;type:text"`
	AreaHectares     *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (DBField) TableName() string {
	return "fields"
}

// NewFieldRepository creates a new field repository
func NewFieldRepository(db *gorm.DB) domain.FieldRepository {
	return &FieldRepositoryImpl{db: db}
}

// Create implements domain.FieldRepository
func (r *FieldRepositoryImpl) Create(ctx context.Context, field *domain.Field) error {
	dbField := fieldDomainToDB(field)
	if err := r.db.WithContext(ctx).Create(dbField).Error; err != nil {
		return err
	}
	field.ID = dbField.ID
	field.CreatedAt = dbField.CreatedAt
	field.UpdatedAt = dbField.UpdatedAt
	return nil
}

// FindByID implements domain.FieldRepository
func (r *FieldRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Field, error) {
	var dbField DBField
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbField).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrFieldNotFound
		}
		return nil, err
	}
	return fieldDBToDomain(&dbField), nil
}

// ListByFarm implements domain.FieldRepository
func (r *FieldRepositoryImpl) ListByFarm(ctx context.Context, farmID uint) ([]*domain.Field, error) {
	var dbFields []DBField
	err := r.db.WithContext(ctx).Where("farm_id = ?", farmID).Order("created_at DESC").Find(&dbFields).Error
	if err != nil {
		return nil, err
	}
	fields := make([]*domain.Field, 0, len(dbFields))
	for i := range dbFields {
		fields = append(fields, fieldDBToDomain(&dbFields[i]))
	}
	return fields, nil
}

// Update implements domain.FieldRepository
func (r *FieldRepositoryImpl) Update(ctx context.Context, field *domain.Field) error {
	dbField := fieldDomainToDB(field)
	return r.db.WithContext(ctx).Save(dbField).Error
}

func fieldDomainToDB(field *domain.Field) *DBField {
	return &DBField{
		ID:               field.ID,
		FarmID:           field.FarmID,
		Name:             field.Name,
		CropType:         field.CropType,
		PlantingDate:     field.PlantingDate,
		SoilType:         field.SoilType,
		IrrigationMethod: field.IrrigationMethod,
		BoundaryGeoJSON:  field.BoundaryGeoJSON,
		AreaHectares:     field.AreaHectares,
		CreatedAt:        field.CreatedAt,
	}
}

func fieldDBToDomain(dbField *DBField) *domain.Field {
	return &domain.Field{
		ID:               dbField.ID,
		FarmID:           dbField.FarmID,
		Name:             dbField.Name,
		CropType:         dbField.CropType,
		PlantingDate:     dbField.PlantingDate,
		SoilType:         dbField.SoilType,
		IrrigationMethod: dbField.IrrigationMethod,
		BoundaryGeoJSON:  dbField.BoundaryGeoJSON,
		AreaHectares:     dbField.AreaHectares,
		CreatedAt:        dbField.CreatedAt,
		UpdatedAt:        dbField.UpdatedAt,
	}
}
