package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrForbidden   = errors.New("forbidden")
	ErrUnknownRole = errors.New("unknown role")
)

// Validation errors
var (
	ErrEmailRequired    = errors.New("Email is required for admin registration.")
	ErrPhoneRequired    = errors.New("Phone number is required for farmer registration.")
	ErrInvalidRole      = errors.New("role must be admin or farmer")
	ErrNothingToUpdate  = errors.New("nothing to update")
	ErrAlertTypeMissing = errors.New("alert_type is required")
	ErrMessageMissing   = errors.New("message is required")
	ErrInvalidSeverity  = errors.New("invalid severity")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrCropTypeMissing  = errors.New("crop_type is required")
	ErrSerialMissing    = errors.New("serial_number is required")
	ErrFarmerIDMissing  = errors.New("farmer_id is required")
)

// Record errors
var (
	ErrAlertNotFound   = errors.New("alert not found")
	ErrFarmNotFound    = errors.New("farm not found")
	ErrFieldNotFound   = errors.New("field not found")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrDuplicateSerial = errors.New("device serial number already registered")
)
