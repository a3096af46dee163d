package mocks

import (
	"context"

	"github.com/you/agrialert/domain"
)

// MockPasswordService implements domain.PasswordService for testing. The
// default Verify accepts any pair whose hash is "hashed:" + password.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(userID uint, role, loginKey string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Generate(userID uint, role, loginKey string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role, loginKey)
	}
	return "test-token", nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// MockNotificationService implements domain.NotificationService and records
// every message it was asked to send.
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error
	Sent        []SentSMS
}

type SentSMS struct {
	To      string
	Message string
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	return nil
}

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc   func(ctx context.Context, in domain.RegisterInput) (*domain.User, error)
	LoginFunc      func(ctx context.Context, loginKey, password string) (*domain.AuthResult, error)
	GetProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil, domain.ErrInvalidRole
}

func (m *MockAuthService) Login(ctx context.Context, loginKey, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, loginKey, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// MockAlertService implements domain.AlertService for testing
type MockAlertService struct {
	CreateFunc func(ctx context.Context, auth domain.AuthContext, in domain.AlertCreateInput) (*domain.Alert, error)
	GetFunc    func(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Alert, error)
	UpdateFunc func(ctx context.Context, auth domain.AuthContext, id uint, update *domain.AlertUpdate) (*domain.Alert, error)
	ListFunc   func(ctx context.Context, auth domain.AuthContext, filter domain.AlertFilter) ([]*domain.Alert, error)
}

func NewMockAlertService() *MockAlertService {
	return &MockAlertService{}
}

func (m *MockAlertService) Create(ctx context.Context, auth domain.AuthContext, in domain.AlertCreateInput) (*domain.Alert, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, auth, in)
	}
	return nil, domain.ErrForbidden
}

func (m *MockAlertService) Get(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Alert, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, auth, id)
	}
	return nil, domain.ErrAlertNotFound
}

func (m *MockAlertService) Update(ctx context.Context, auth domain.AuthContext, id uint, update *domain.AlertUpdate) (*domain.Alert, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, auth, id, update)
	}
	return nil, domain.ErrAlertNotFound
}

func (m *MockAlertService) List(ctx context.Context, auth domain.AuthContext, filter domain.AlertFilter) ([]*domain.Alert, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, auth, filter)
	}
	return nil, nil
}

// MockAccessService implements domain.AccessService for testing. Defaults
// allow everything with an unrestricted scope, so tests opt in to denials.
type MockAccessService struct {
	CanViewAlertFunc        func(ctx context.Context, auth domain.AuthContext, alert *domain.Alert) error
	ValidateAlertUpdateFunc func(auth domain.AuthContext, update *domain.AlertUpdate) error
	CanAccessFarmFunc       func(ctx context.Context, auth domain.AuthContext, farm *domain.Farm) error
	CanAccessFieldFunc      func(ctx context.Context, auth domain.AuthContext, field *domain.Field) error
	CanAccessDeviceFunc     func(ctx context.Context, auth domain.AuthContext, device *domain.Device) error
	AlertScopeForFunc       func(auth domain.AuthContext) domain.AlertScope
	FarmOwnerFunc           func(ctx context.Context, farmID uint) (uint, error)
	DeviceOwnerFunc         func(ctx context.Context, deviceID uint) (uint, error)
}

func NewMockAccessService() *MockAccessService {
	return &MockAccessService{}
}

func (m *MockAccessService) CanViewAlert(ctx context.Context, auth domain.AuthContext, alert *domain.Alert) error {
	if m.CanViewAlertFunc != nil {
		return m.CanViewAlertFunc(ctx, auth, alert)
	}
	return nil
}

func (m *MockAccessService) ValidateAlertUpdate(auth domain.AuthContext, update *domain.AlertUpdate) error {
	if m.ValidateAlertUpdateFunc != nil {
		return m.ValidateAlertUpdateFunc(auth, update)
	}
	return nil
}

func (m *MockAccessService) CanAccessFarm(ctx context.Context, auth domain.AuthContext, farm *domain.Farm) error {
	if m.CanAccessFarmFunc != nil {
		return m.CanAccessFarmFunc(ctx, auth, farm)
	}
	return nil
}

func (m *MockAccessService) CanAccessField(ctx context.Context, auth domain.AuthContext, field *domain.Field) error {
	if m.CanAccessFieldFunc != nil {
		return m.CanAccessFieldFunc(ctx, auth, field)
	}
	return nil
}

func (m *MockAccessService) CanAccessDevice(ctx context.Context, auth domain.AuthContext, device *domain.Device) error {
	if m.CanAccessDeviceFunc != nil {
		return m.CanAccessDeviceFunc(ctx, auth, device)
	}
	return nil
}

func (m *MockAccessService) AlertScopeFor(auth domain.AuthContext) domain.AlertScope {
	if m.AlertScopeForFunc != nil {
		return m.AlertScopeForFunc(auth)
	}
	return domain.AlertScope{Unrestricted: true}
}

func (m *MockAccessService) FarmOwner(ctx context.Context, farmID uint) (uint, error) {
	if m.FarmOwnerFunc != nil {
		return m.FarmOwnerFunc(ctx, farmID)
	}
	return 0, domain.ErrFarmNotFound
}

func (m *MockAccessService) DeviceOwner(ctx context.Context, deviceID uint) (uint, error) {
	if m.DeviceOwnerFunc != nil {
		return m.DeviceOwnerFunc(ctx, deviceID)
	}
	return 0, domain.ErrDeviceNotFound
}

// MockCasbinEnforcer implements domain.CasbinEnforcer for testing. Defaults
// behave like an empty in-memory policy table that accepts every change.
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error

	Saves int
}

func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	return nil, nil
}

func (m *MockCasbinEnforcer) SavePolicy() error {
	m.Saves++
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}
