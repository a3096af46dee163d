package domain

import "context"

// UserRepository defines identity data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// FarmRepository defines farm data access operations
type FarmRepository interface {
	Create(ctx context.Context, farm *Farm) error
	FindByID(ctx context.Context, id uint) (*Farm, error)
	ListByFarmer(ctx context.Context, farmerID uint) ([]*Farm, error)
	ListAll(ctx context.Context) ([]*Farm, error)
	Update(ctx context.Context, farm *Farm) error
}

// FieldRepository defines field data access operations
type FieldRepository interface {
	Create(ctx context.Context, field *Field) error
	FindByID(ctx context.Context, id uint) (*Field, error)
	ListByFarm(ctx context.Context, farmID uint) ([]*Field, error)
	Update(ctx context.Context, field *Field) error
}

// DeviceRepository defines device data access operations
type DeviceRepository interface {
	Create(ctx context.Context, device *Device) error
	FindByID(ctx context.Context, id uint) (*Device, error)
	FindBySerial(ctx context.Context, serial string) (*Device, error)
	ListAll(ctx context.Context) ([]*Device, error)
	ListByFarmer(ctx context.Context, farmerID uint) ([]*Device, error)
	Update(ctx context.Context, device *Device) error
	Delete(ctx context.Context, id uint) error
}

// AlertRepository defines alert data access operations. List applies the
// visibility scope before the optional filters and orders newest-first.
type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	FindByID(ctx context.Context, id uint) (*Alert, error)
	Update(ctx context.Context, alert *Alert) error
	List(ctx context.Context, scope AlertScope, filter AlertFilter) ([]*Alert, error)
}

// OwnershipCache caches resolved ownership-chain lookups. A miss returns
// (0, false, nil); errors are for transport failures only.
type OwnershipCache interface {
	GetFarmOwner(ctx context.Context, farmID uint) (uint, bool, error)
	SetFarmOwner(ctx context.Context, farmID, farmerID uint) error
	GetDeviceOwner(ctx context.Context, deviceID uint) (uint, bool, error)
	SetDeviceOwner(ctx context.Context, deviceID, farmerID uint) error
	InvalidateDevice(ctx context.Context, deviceID uint) error
}

// RegisterInput carries registration fields; the required login key depends
// on the role (email for admins, phone for farmers).
type RegisterInput struct {
	Name      string
	Role      string
	Email     string
	Phone     string
	Password  string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// AuthService defines registration and login business logic
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, loginKey, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
}

// AccessService is the role/ownership authorizer. All decisions default to
// deny for unknown roles.
type AccessService interface {
	CanViewAlert(ctx context.Context, auth AuthContext, alert *Alert) error
	ValidateAlertUpdate(auth AuthContext, update *AlertUpdate) error
	CanAccessFarm(ctx context.Context, auth AuthContext, farm *Farm) error
	CanAccessField(ctx context.Context, auth AuthContext, field *Field) error
	CanAccessDevice(ctx context.Context, auth AuthContext, device *Device) error
	AlertScopeFor(auth AuthContext) AlertScope
	FarmOwner(ctx context.Context, farmID uint) (uint, error)
	DeviceOwner(ctx context.Context, deviceID uint) (uint, error)
}

// AlertCreateInput carries the fields accepted on manual alert creation.
type AlertCreateInput struct {
	AlertType string
	Severity  AlertSeverity
	Message   string
	Details   map[string]interface{}
	FarmerID  *uint
	DeviceID  *uint
	FarmID    *uint
	FieldID   *uint
}

// AlertService governs the alert lifecycle
type AlertService interface {
	Create(ctx context.Context, auth AuthContext, in AlertCreateInput) (*Alert, error)
	Get(ctx context.Context, auth AuthContext, id uint) (*Alert, error)
	Update(ctx context.Context, auth AuthContext, id uint, update *AlertUpdate) (*Alert, error)
	List(ctx context.Context, auth AuthContext, filter AlertFilter) ([]*Alert, error)
}

// FarmService defines farm registry operations
type FarmService interface {
	Create(ctx context.Context, auth AuthContext, farm *Farm) (*Farm, error)
	Get(ctx context.Context, auth AuthContext, id uint) (*Farm, error)
	List(ctx context.Context, auth AuthContext) ([]*Farm, error)
	Update(ctx context.Context, auth AuthContext, id uint, farm *Farm) (*Farm, error)
}

// FieldService defines field registry operations
type FieldService interface {
	Create(ctx context.Context, auth AuthContext, farmID uint, field *Field) (*Field, error)
	Get(ctx context.Context, auth AuthContext, id uint) (*Field, error)
	ListByFarm(ctx context.Context, auth AuthContext, farmID uint) ([]*Field, error)
	Update(ctx context.Context, auth AuthContext, id uint, field *Field) (*Field, error)
}

// DeviceService defines device registry operations
type DeviceService interface {
	Create(ctx context.Context, auth AuthContext, device *Device) (*Device, error)
	Get(ctx context.Context, auth AuthContext, id uint) (*Device, error)
	List(ctx context.Context, auth AuthContext) ([]*Device, error)
	Update(ctx context.Context, auth AuthContext, id uint, device *Device) (*Device, error)
	Delete(ctx context.Context, auth AuthContext, id uint) error
	Heartbeat(ctx context.Context, auth AuthContext, id uint) (*Device, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	Generate(userID uint, role, loginKey string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService defines outbound notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// PolicyService manages the route-level RBAC policy table
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	GetPolicies() [][]string
}

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	LoginKey  string `json:"login_key"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer is the subset of the Casbin enforcer the policy service uses
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
