package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/mocks"
)

type alertFixture struct {
	alertRepo  *mocks.MockAlertRepository
	userRepo   *mocks.MockUserRepository
	farmRepo   *mocks.MockFarmRepository
	fieldRepo  *mocks.MockFieldRepository
	deviceRepo *mocks.MockDeviceRepository
	accessSvc  *mocks.MockAccessService
	notifySvc  *mocks.MockNotificationService
	svc        *AlertServiceImpl
	now        time.Time
}

func newAlertFixture() *alertFixture {
	f := &alertFixture{
		alertRepo:  mocks.NewMockAlertRepository(),
		userRepo:   mocks.NewMockUserRepository(),
		farmRepo:   mocks.NewMockFarmRepository(),
		fieldRepo:  mocks.NewMockFieldRepository(),
		deviceRepo: mocks.NewMockDeviceRepository(),
		accessSvc:  mocks.NewMockAccessService(),
		notifySvc:  mocks.NewMockNotificationService(),
		now:        time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewAlertService(f.alertRepo, f.userRepo, f.farmRepo, f.fieldRepo, f.deviceRepo, f.accessSvc, f.notifySvc).(*AlertServiceImpl)
	f.svc.now = func() time.Time { return f.now }
	return f
}

var adminCtx = domain.AuthContext{UserID: 1, Role: domain.RoleAdmin}
var farmerCtx = domain.AuthContext{UserID: 10, Role: domain.RoleFarmer}

func TestAlertCreateDefaults(t *testing.T) {
	f := newAlertFixture()

	alert, err := f.svc.Create(context.Background(), adminCtx, domain.AlertCreateInput{
		AlertType: "pest_detection",
		Message:   "Aphids detected in sector 4",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if alert.Status != domain.StatusNew {
		t.Errorf("Status = %q, want new", alert.Status)
	}
	if alert.Severity != domain.SeverityMedium {
		t.Errorf("Severity = %q, want medium default", alert.Severity)
	}
	if alert.CreatedByUserID == nil || *alert.CreatedByUserID != adminCtx.UserID {
		t.Error("CreatedByUserID should record the creating admin")
	}
	if alert.AcknowledgedAt != nil || alert.ResolvedAt != nil {
		t.Error("new alert must not carry lifecycle timestamps")
	}
}

func TestAlertCreateValidation(t *testing.T) {
	f := newAlertFixture()

	tests := []struct {
		name    string
		auth    domain.AuthContext
		in      domain.AlertCreateInput
		wantErr error
	}{
		{"farmer denied", farmerCtx, domain.AlertCreateInput{AlertType: "x", Message: "y"}, domain.ErrForbidden},
		{"missing type", adminCtx, domain.AlertCreateInput{Message: "y"}, domain.ErrAlertTypeMissing},
		{"missing message", adminCtx, domain.AlertCreateInput{AlertType: "x"}, domain.ErrMessageMissing},
		{"bad severity", adminCtx, domain.AlertCreateInput{AlertType: "x", Message: "y", Severity: "urgent"}, domain.ErrInvalidSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Create(context.Background(), tt.auth, tt.in); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlertCreateRejectsDanglingRefs(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.AlertCreateInput
		wantErr error
	}{
		{"unknown farmer", domain.AlertCreateInput{AlertType: "x", Message: "y", FarmerID: uintPtr(424242)}, domain.ErrUserNotFound},
		{"unknown farm", domain.AlertCreateInput{AlertType: "x", Message: "y", FarmID: uintPtr(888888)}, domain.ErrFarmNotFound},
		{"unknown field", domain.AlertCreateInput{AlertType: "x", Message: "y", FieldID: uintPtr(77)}, domain.ErrFieldNotFound},
		{"unknown device", domain.AlertCreateInput{AlertType: "x", Message: "y", DeviceID: uintPtr(55)}, domain.ErrDeviceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAlertFixture()
			creates := 0
			f.alertRepo.CreateFunc = func(ctx context.Context, alert *domain.Alert) error {
				creates++
				return nil
			}
			if _, err := f.svc.Create(context.Background(), adminCtx, tt.in); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if creates != 0 {
				t.Errorf("repo Create calls = %d, want 0 for a dangling reference", creates)
			}
		})
	}
}

func TestAlertCreateFarmerRefMustBeFarmer(t *testing.T) {
	f := newAlertFixture()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleAdmin}, nil
	}

	_, err := f.svc.Create(context.Background(), adminCtx, domain.AlertCreateInput{
		AlertType: "x",
		Message:   "y",
		FarmerID:  uintPtr(2),
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("Create() error = %v, want ErrInvalidRole for a non-farmer reference", err)
	}
}

func TestAlertCreateValidRefsAccepted(t *testing.T) {
	f := newAlertFixture()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleFarmer}, nil
	}
	f.farmRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Farm, error) {
		return &domain.Farm{ID: id, FarmerID: 10}, nil
	}
	f.deviceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Device, error) {
		return &domain.Device{ID: id}, nil
	}

	_, err := f.svc.Create(context.Background(), adminCtx, domain.AlertCreateInput{
		AlertType: "soil_moisture",
		Message:   "Moisture below threshold",
		FarmerID:  uintPtr(10),
		FarmID:    uintPtr(3),
		DeviceID:  uintPtr(7),
	})
	if err != nil {
		t.Fatalf("Create() error = %v, want success when every reference resolves", err)
	}
}

func TestAlertCreateCriticalSendsSMS(t *testing.T) {
	f := newAlertFixture()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Phone: "+15550002222", Role: domain.RoleFarmer}, nil
	}

	farmerID := uint(10)
	_, err := f.svc.Create(context.Background(), adminCtx, domain.AlertCreateInput{
		AlertType: "frost_warning",
		Message:   "Temperature dropping below -2C",
		Severity:  domain.SeverityCritical,
		FarmerID:  &farmerID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(f.notifySvc.Sent) != 1 {
		t.Fatalf("sent %d SMS, want 1", len(f.notifySvc.Sent))
	}
	sms := f.notifySvc.Sent[0]
	if sms.To != "+15550002222" {
		t.Errorf("SMS to %q, want the farmer's phone", sms.To)
	}
	if !strings.Contains(sms.Message, "CRITICAL") || !strings.Contains(sms.Message, "frost_warning") {
		t.Errorf("SMS body %q missing severity or type", sms.Message)
	}
}

func TestAlertCreateSMSFailureDoesNotFailCreate(t *testing.T) {
	f := newAlertFixture()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Phone: "+15550002222", Role: domain.RoleFarmer}, nil
	}
	f.notifySvc.SendSMSFunc = func(to, message string) error {
		return errors.New("twilio unavailable")
	}

	farmerID := uint(10)
	_, err := f.svc.Create(context.Background(), adminCtx, domain.AlertCreateInput{
		AlertType: "frost_warning",
		Message:   "m",
		Severity:  domain.SeverityCritical,
		FarmerID:  &farmerID,
	})
	if err != nil {
		t.Errorf("Create() error = %v, delivery failure must not fail the create", err)
	}
}

func TestAlertUpdateNothingToUpdate(t *testing.T) {
	f := newAlertFixture()
	if _, err := f.svc.Update(context.Background(), adminCtx, 1, &domain.AlertUpdate{}); !errors.Is(err, domain.ErrNothingToUpdate) {
		t.Errorf("Update() error = %v, want ErrNothingToUpdate", err)
	}
}

func TestAlertUpdateNotFound(t *testing.T) {
	f := newAlertFixture()
	status := domain.StatusAcknowledged
	if _, err := f.svc.Update(context.Background(), adminCtx, 99, &domain.AlertUpdate{Status: &status}); !errors.Is(err, domain.ErrAlertNotFound) {
		t.Errorf("Update() error = %v, want ErrAlertNotFound", err)
	}
}

func TestAlertUpdateStatusTimestamps(t *testing.T) {
	ack := domain.StatusAcknowledged
	resolved := domain.StatusResolved
	closed := domain.StatusClosed
	inProgress := domain.StatusInProgress

	tests := []struct {
		name       string
		status     domain.AlertStatus
		wantAck    bool
		wantResolv bool
	}{
		{"acknowledged stamps acknowledged_at", ack, true, false},
		{"resolved stamps resolved_at", resolved, false, true},
		{"closed stamps resolved_at", closed, false, true},
		{"in_progress stamps nothing", inProgress, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAlertFixture()
			f.alertRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Alert, error) {
				return &domain.Alert{ID: id, Status: domain.StatusNew}, nil
			}

			status := tt.status
			alert, err := f.svc.Update(context.Background(), adminCtx, 1, &domain.AlertUpdate{Status: &status})
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if alert.Status != tt.status {
				t.Errorf("Status = %q, want %q", alert.Status, tt.status)
			}
			if got := alert.AcknowledgedAt != nil; got != tt.wantAck {
				t.Errorf("AcknowledgedAt set = %v, want %v", got, tt.wantAck)
			}
			if got := alert.ResolvedAt != nil; got != tt.wantResolv {
				t.Errorf("ResolvedAt set = %v, want %v", got, tt.wantResolv)
			}
			if !alert.UpdatedAt.Equal(f.now) {
				t.Errorf("UpdatedAt = %v, want fixture clock %v", alert.UpdatedAt, f.now)
			}
		})
	}
}

func TestAlertUpdateResubmitSameStatus(t *testing.T) {
	f := newAlertFixture()
	earlier := f.now.Add(-time.Hour)
	f.alertRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Alert, error) {
		return &domain.Alert{ID: id, Status: domain.StatusResolved, ResolvedAt: &earlier}, nil
	}

	resolved := domain.StatusResolved
	alert, err := f.svc.Update(context.Background(), adminCtx, 1, &domain.AlertUpdate{Status: &resolved})
	if err != nil {
		t.Fatalf("Update() error = %v, re-submitting the current status must succeed", err)
	}
	if alert.ResolvedAt == nil || !alert.ResolvedAt.Equal(f.now) {
		t.Errorf("ResolvedAt = %v, want advanced to %v", alert.ResolvedAt, f.now)
	}
}

func TestAlertUpdateInvalidValues(t *testing.T) {
	f := newAlertFixture()

	badSev := domain.AlertSeverity("urgent")
	if _, err := f.svc.Update(context.Background(), adminCtx, 1, &domain.AlertUpdate{Severity: &badSev}); !errors.Is(err, domain.ErrInvalidSeverity) {
		t.Errorf("Update() error = %v, want ErrInvalidSeverity", err)
	}

	badStatus := domain.AlertStatus("done")
	if _, err := f.svc.Update(context.Background(), adminCtx, 1, &domain.AlertUpdate{Status: &badStatus}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("Update() error = %v, want ErrInvalidStatus", err)
	}
}

func TestAlertUpdateDeniedBeforeWrite(t *testing.T) {
	f := newAlertFixture()
	f.alertRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Alert, error) {
		return &domain.Alert{ID: id, Status: domain.StatusNew}, nil
	}
	f.accessSvc.ValidateAlertUpdateFunc = func(auth domain.AuthContext, update *domain.AlertUpdate) error {
		return domain.ErrForbidden
	}
	writes := 0
	f.alertRepo.UpdateFunc = func(ctx context.Context, alert *domain.Alert) error {
		writes++
		return nil
	}

	status := domain.StatusResolved
	if _, err := f.svc.Update(context.Background(), farmerCtx, 1, &domain.AlertUpdate{Status: &status}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Update() error = %v, want ErrForbidden", err)
	}
	if writes != 0 {
		t.Errorf("repository written %d times on a denied update, want 0", writes)
	}
}

func TestAlertListAppliesCallerScope(t *testing.T) {
	f := newAlertFixture()
	f.accessSvc.AlertScopeForFunc = func(auth domain.AuthContext) domain.AlertScope {
		return domain.AlertScope{FarmerID: auth.UserID}
	}

	var gotScope domain.AlertScope
	f.alertRepo.ListFunc = func(ctx context.Context, scope domain.AlertScope, filter domain.AlertFilter) ([]*domain.Alert, error) {
		gotScope = scope
		return nil, nil
	}

	other := uint(99)
	if _, err := f.svc.List(context.Background(), farmerCtx, domain.AlertFilter{FarmerID: &other}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotScope.Unrestricted || gotScope.FarmerID != farmerCtx.UserID {
		t.Errorf("scope = %+v, want confined to the caller regardless of filters", gotScope)
	}
}
