package repositories

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/you/agrialert/domain"
)

// AlertRepositoryImpl implements domain.AlertRepository using GORM
type AlertRepositoryImpl struct {
	db *gorm.DB
}

// DBAlert represents the database model for Alert
type DBAlert struct {
	ID              uint   `gorm:"primaryKey"`
	AlertType       string `gorm:"index;size:128"`
	Severity        string `gorm:"index;size:32"`
	Message         string `gorm:"type:text"`
	Status          string `gorm:"index;size:32"`
	DetailsJSON     string `gorm:"column:details;type:text"`
	FarmerID        *uint  `gorm:"index"`
	DeviceID        *uint  `gorm:"index"`
	FarmID          *uint  `gorm:"index"`
	FieldID         *uint  `gorm:"index"`
	CreatedByUserID *uint
	AcknowledgedAt  *time.Time
	ResolvedAt      *time.Time
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (DBAlert) TableName() string {
	return "alerts"
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *gorm.DB) domain.AlertRepository {
	return &AlertRepositoryImpl{db: db}
}

// Create implements domain.AlertRepository
func (r *AlertRepositoryImpl) Create(ctx context.Context, alert *domain.Alert) error {
	dbAlert, err := alertDomainToDB(alert)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(dbAlert).Error; err != nil {
		return err
	}
	alert.ID = dbAlert.ID
	alert.CreatedAt = dbAlert.CreatedAt
	alert.UpdatedAt = dbAlert.UpdatedAt
	return nil
}

// FindByID implements domain.AlertRepository
func (r *AlertRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Alert, error) {
	var dbAlert DBAlert
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAlert).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}
	return alertDBToDomain(&dbAlert)
}

// Update implements domain.AlertRepository. The whole row is written in a
// single statement; there is no version column, so concurrent updates are
// last-write-wins.
func (r *AlertRepositoryImpl) Update(ctx context.Context, alert *domain.Alert) error {
	dbAlert, err := alertDomainToDB(alert)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(dbAlert).Error
}

// List implements domain.AlertRepository. The visibility scope is applied
// first and is non-optional; explicit filters are ANDed on top. Results are
// ordered newest-first.
func (r *AlertRepositoryImpl) List(ctx context.Context, scope domain.AlertScope, filter domain.AlertFilter) ([]*domain.Alert, error) {
	q := r.db.WithContext(ctx).Model(&DBAlert{})

	if !scope.Unrestricted {
		ownFarms := r.db.Model(&DBFarm{}).Select("id").Where("farmer_id = ?", scope.FarmerID)
		ownDevices := r.db.Model(&DBDevice{}).Select("id").Where("farmer_id = ?", scope.FarmerID)
		ownFields := r.db.Model(&DBField{}).Select("fields.id").
			Joins("JOIN farms ON farms.id = fields.farm_id").
			Where("farms.farmer_id = ?", scope.FarmerID)
		q = q.Where(
			"farmer_id = ? OR farm_id IN (?) OR device_id IN (?) OR field_id IN (?)",
			scope.FarmerID, ownFarms, ownDevices, ownFields,
		)
	}

	if filter.FarmerID != nil {
		q = q.Where("farmer_id = ?", *filter.FarmerID)
	}
	if filter.DeviceID != nil {
		q = q.Where("device_id = ?", *filter.DeviceID)
	}
	if filter.FarmID != nil {
		q = q.Where("farm_id = ?", *filter.FarmID)
	}
	if filter.FieldID != nil {
		q = q.Where("field_id = ?", *filter.FieldID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", string(filter.Severity))
	}
	if filter.AlertType != "" {
		q = q.Where("alert_type = ?", filter.AlertType)
	}

	var dbAlerts []DBAlert
	if err := q.Order("created_at DESC").Find(&dbAlerts).Error; err != nil {
		return nil, err
	}

	alerts := make([]*domain.Alert, 0, len(dbAlerts))
	for i := range dbAlerts {
		alert, err := alertDBToDomain(&dbAlerts[i])
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func alertDomainToDB(alert *domain.Alert) (*DBAlert, error) {
	detailsJSON := ""
	if alert.Details != nil {
		raw, err := json.Marshal(alert.Details)
		if err != nil {
			return nil, err
		}
		detailsJSON = string(raw)
	}
	return &DBAlert{
		ID:              alert.ID,
		AlertType:       alert.AlertType,
		Severity:        string(alert.Severity),
		Message:         alert.Message,
		Status:          string(alert.Status),
		DetailsJSON:     detailsJSON,
		FarmerID:        alert.FarmerID,
		DeviceID:        alert.DeviceID,
		FarmID:          alert.FarmID,
		FieldID:         alert.FieldID,
		CreatedByUserID: alert.CreatedByUserID,
		AcknowledgedAt:  alert.AcknowledgedAt,
		ResolvedAt:      alert.ResolvedAt,
		CreatedAt:       alert.CreatedAt,
		UpdatedAt:       alert.UpdatedAt,
	}, nil
}

func alertDBToDomain(dbAlert *DBAlert) (*domain.Alert, error) {
	var details map[string]interface{}
	if dbAlert.DetailsJSON != "" {
		if err := json.Unmarshal([]byte(dbAlert.DetailsJSON), &details); err != nil {
			return nil, err
		}
	}
	return &domain.Alert{
		ID:              dbAlert.ID,
		AlertType:       dbAlert.AlertType,
		Severity:        domain.AlertSeverity(dbAlert.Severity),
		Message:         dbAlert.Message,
		Status:          domain.AlertStatus(dbAlert.Status),
		Details:         details,
		FarmerID:        dbAlert.FarmerID,
		DeviceID:        dbAlert.DeviceID,
		FarmID:          dbAlert.FarmID,
		FieldID:         dbAlert.FieldID,
		CreatedByUserID: dbAlert.CreatedByUserID,
		AcknowledgedAt:  dbAlert.AcknowledgedAt,
		ResolvedAt:      dbAlert.ResolvedAt,
		CreatedAt:       dbAlert.CreatedAt,
		UpdatedAt:       dbAlert.UpdatedAt,
	}, nil
}
