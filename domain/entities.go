package domain

import "time"

// Roles recognized by the platform. Any other role is denied everywhere.
const (
	RoleAdmin  = "admin"
	RoleFarmer = "farmer"
)

// AlertSeverity classifies how urgent an alert is.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// IsValid reports whether the severity is one of the known values.
func (s AlertSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// AlertStatus is the lifecycle position of an alert. The progression
// new -> acknowledged -> in_progress -> resolved -> closed is conventional,
// not enforced: any status may follow any other through a generic update,
// subject only to per-role rules.
type AlertStatus string

const (
	StatusNew          AlertStatus = "new"
	StatusAcknowledged AlertStatus = "acknowledged"
	StatusInProgress   AlertStatus = "in_progress"
	StatusResolved     AlertStatus = "resolved"
	StatusClosed       AlertStatus = "closed"
)

// IsValid reports whether the status is one of the known values.
func (s AlertStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusAcknowledged, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// DeviceStatus is the operational state of a field device.
type DeviceStatus string

const (
	DeviceActive         DeviceStatus = "active"
	DeviceInactive       DeviceStatus = "inactive"
	DeviceError          DeviceStatus = "error"
	DeviceMaintenance    DeviceStatus = "maintenance"
	DeviceDecommissioned DeviceStatus = "decommissioned"
)

// IsValid reports whether the device status is one of the known values.
func (s DeviceStatus) IsValid() bool {
	switch s {
	case DeviceActive, DeviceInactive, DeviceError, DeviceMaintenance, DeviceDecommissioned:
		return true
	}
	return false
}

// User is a platform identity. Admins log in by email, farmers by phone;
// exactly one login key is populated per role. Role is immutable after
// registration and there is no delete path.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Address      string    `json:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginKey returns the credential key the user authenticates with.
func (u *User) LoginKey() string {
	if u.Role == RoleAdmin {
		return u.Email
	}
	return u.Phone
}

// Farm is owned by exactly one farmer. Ownership is immutable.
type Farm struct {
	ID              uint      `json:"id"`
	FarmerID        uint      `json:"farmer_id"`
	Name            string    `json:"name"`
	Address         string    `json:"address,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	BoundaryGeoJSON string    `json:"boundary,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Field belongs to exactly one farm; its owner is the farm's farmer.
type Field struct {
	ID               uint       `json:"id"`
	FarmID           uint       `json:"farm_id"`
	Name             string     `json:"name"`
	CropType         string     `json:"crop_type"`
	PlantingDate     *time.Time `json:"planting_date,omitempty"`
	SoilType         string     `json:"soil_type,omitempty"`
	IrrigationMethod string     `json:"irrigation_method,omitempty"`
	BoundaryGeoJSON  string     `json:"boundary,omitempty"`
	AreaHectares     *float64   `json:"area_hectares,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Device is a sensor unit, optionally linked to a farm and a farmer.
type Device struct {
	ID           uint         `json:"id"`
	SerialNumber string       `json:"serial_number"`
	Name         string       `json:"name,omitempty"`
	Status       DeviceStatus `json:"status"`
	FarmID       *uint        `json:"farm_id,omitempty"`
	FarmerID     *uint        `json:"farmer_id,omitempty"`
	RegisteredAt time.Time    `json:"registered_at"`
	LastSeenAt   *time.Time   `json:"last_seen_at,omitempty"`
}

// Alert is the core mutable record. It may reference any combination of
// farmer, device, farm and field; a farmer can see it when related through
// any of those references, directly or via farm/device ownership.
type Alert struct {
	ID              uint                   `json:"id"`
	AlertType       string                 `json:"alert_type"`
	Severity        AlertSeverity          `json:"severity"`
	Message         string                 `json:"message"`
	Status          AlertStatus            `json:"status"`
	Details         map[string]interface{} `json:"details,omitempty"`
	FarmerID        *uint                  `json:"farmer_id,omitempty"`
	DeviceID        *uint                  `json:"device_id,omitempty"`
	FarmID          *uint                  `json:"farm_id,omitempty"`
	FieldID         *uint                  `json:"field_id,omitempty"`
	CreatedByUserID *uint                  `json:"created_by_user_id,omitempty"`
	AcknowledgedAt  *time.Time             `json:"acknowledged_at,omitempty"`
	ResolvedAt      *time.Time             `json:"resolved_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// AlertUpdate is a partial alert mutation. Nil pointers mean "leave as is".
type AlertUpdate struct {
	AlertType *string
	Severity  *AlertSeverity
	Message   *string
	Status    *AlertStatus
	Details   map[string]interface{}
}

// IsEmpty reports whether the update carries no recognized fields.
func (u *AlertUpdate) IsEmpty() bool {
	return u.AlertType == nil && u.Severity == nil && u.Message == nil &&
		u.Status == nil && u.Details == nil
}

// ChangesBesidesStatus reports whether any field other than status (and its
// derived timestamp) would change.
func (u *AlertUpdate) ChangesBesidesStatus() bool {
	return u.AlertType != nil || u.Severity != nil || u.Message != nil || u.Details != nil
}

// AlertFilter holds the optional list-query dimensions. All supplied
// dimensions are combined with AND, after the caller's visibility scope.
type AlertFilter struct {
	FarmerID  *uint
	DeviceID  *uint
	FarmID    *uint
	FieldID   *uint
	Status    AlertStatus
	Severity  AlertSeverity
	AlertType string
}

// AlertScope is the caller's visibility over the alert collection.
// Unrestricted scopes see everything; otherwise only alerts related to
// FarmerID through any reference path are visible.
type AlertScope struct {
	Unrestricted bool
	FarmerID     uint
}

// AuthContext is the verified identity attached to a request after token
// verification. It is threaded explicitly; handlers never read raw claims.
type AuthContext struct {
	UserID   uint
	Role     string
	LoginKey string
}

// AuthResult is a successful login outcome.
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}
