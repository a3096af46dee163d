package services

import (
	"context"
	"fmt"

	"github.com/you/agrialert/domain"
)

// FieldServiceImpl implements domain.FieldService
type FieldServiceImpl struct {
	fieldRepo domain.FieldRepository
	farmRepo  domain.FarmRepository
	accessSvc domain.AccessService
}

// NewFieldService creates a new field service
func NewFieldService(fieldRepo domain.FieldRepository, farmRepo domain.FarmRepository, accessSvc domain.AccessService) domain.FieldService {
	return &FieldServiceImpl{fieldRepo: fieldRepo, farmRepo: farmRepo, accessSvc: accessSvc}
}

// Create implements domain.FieldService. The caller must own (or admin) the
// parent farm; crop type is required.
func (s *FieldServiceImpl) Create(ctx context.Context, auth domain.AuthContext, farmID uint, field *domain.Field) (*domain.Field, error) {
	farm, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessFarm(ctx, auth, farm); err != nil {
		return nil, err
	}
	if field.CropType == "" {
		return nil, domain.ErrCropTypeMissing
	}

	field.FarmID = farmID
	if err := s.fieldRepo.Create(ctx, field); err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return field, nil
}

// Get implements domain.FieldService
func (s *FieldServiceImpl) Get(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Field, error) {
	field, err := s.fieldRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessField(ctx, auth, field); err != nil {
		return nil, err
	}
	return field, nil
}

// ListByFarm implements domain.FieldService
func (s *FieldServiceImpl) ListByFarm(ctx context.Context, auth domain.AuthContext, farmID uint) ([]*domain.Field, error) {
	farm, err := s.farmRepo.FindByID(ctx, farmID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessFarm(ctx, auth, farm); err != nil {
		return nil, err
	}
	return s.fieldRepo.ListByFarm(ctx, farmID)
}

// Update implements domain.FieldService. The parent farm reference is
// immutable.
func (s *FieldServiceImpl) Update(ctx context.Context, auth domain.AuthContext, id uint, in *domain.Field) (*domain.Field, error) {
	field, err := s.fieldRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanAccessField(ctx, auth, field); err != nil {
		return nil, err
	}

	if in.Name != "" {
		field.Name = in.Name
	}
	if in.CropType != "" {
		field.CropType = in.CropType
	}
	if in.PlantingDate != nil {
		field.PlantingDate = in.PlantingDate
	}
	if in.SoilType != "" {
		field.SoilType = in.SoilType
	}
	if in.IrrigationMethod != "" {
		field.IrrigationMethod = in.IrrigationMethod
	}
	if in.BoundaryGeoJSON != "" {
		field.BoundaryGeoJSON = in.BoundaryGeoJSON
	}
	if in.AreaHectares != nil {
		field.AreaHectares = in.AreaHectares
	}

	if err := s.fieldRepo.Update(ctx, field); err != nil {
		return nil, fmt.Errorf("failed to update field: %w", err)
	}
	return field, nil
}
