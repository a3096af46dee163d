package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/agrialert/domain"
)

// AlertServiceImpl implements domain.AlertService. Status is a soft state
// machine: any status may follow any other through Update, constrained only
// by the per-role rules in the access service. Timestamp side effects are
// applied on the set, not the transition, so re-submitting the same status
// succeeds and advances the timestamp.
type AlertServiceImpl struct {
	alertRepo  domain.AlertRepository
	userRepo   domain.UserRepository
	farmRepo   domain.FarmRepository
	fieldRepo  domain.FieldRepository
	deviceRepo domain.DeviceRepository
	accessSvc  domain.AccessService
	notifySvc  domain.NotificationService
	now        func() time.Time
}

// NewAlertService creates a new alert service
func NewAlertService(
	alertRepo domain.AlertRepository,
	userRepo domain.UserRepository,
	farmRepo domain.FarmRepository,
	fieldRepo domain.FieldRepository,
	deviceRepo domain.DeviceRepository,
	accessSvc domain.AccessService,
	notifySvc domain.NotificationService,
) domain.AlertService {
	return &AlertServiceImpl{
		alertRepo:  alertRepo,
		userRepo:   userRepo,
		farmRepo:   farmRepo,
		fieldRepo:  fieldRepo,
		deviceRepo: deviceRepo,
		accessSvc:  accessSvc,
		notifySvc:  notifySvc,
		now:        time.Now,
	}
}

// Create implements domain.AlertService. Manual creation is admin-only
// (enforced at the route layer as well); alert_type and message are
// required, severity defaults to medium and status to new.
func (s *AlertServiceImpl) Create(ctx context.Context, auth domain.AuthContext, in domain.AlertCreateInput) (*domain.Alert, error) {
	if auth.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.AlertType == "" {
		return nil, domain.ErrAlertTypeMissing
	}
	if in.Message == "" {
		return nil, domain.ErrMessageMissing
	}

	severity := in.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}
	if !severity.IsValid() {
		return nil, domain.ErrInvalidSeverity
	}
	if err := s.validateRefs(ctx, in); err != nil {
		return nil, err
	}

	createdBy := auth.UserID
	alert := &domain.Alert{
		AlertType:       in.AlertType,
		Severity:        severity,
		Message:         in.Message,
		Status:          domain.StatusNew,
		Details:         in.Details,
		FarmerID:        in.FarmerID,
		DeviceID:        in.DeviceID,
		FarmID:          in.FarmID,
		FieldID:         in.FieldID,
		CreatedByUserID: &createdBy,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	if alert.Severity == domain.SeverityCritical {
		s.notifyCritical(ctx, alert)
	}

	return alert, nil
}

// validateRefs rejects a create whose optional references point at rows
// that do not exist. Each lookup failure surfaces the matching not-found
// sentinel, and a farmer_id must name an actual farmer.
func (s *AlertServiceImpl) validateRefs(ctx context.Context, in domain.AlertCreateInput) error {
	if in.FarmerID != nil {
		farmer, err := s.userRepo.FindByID(ctx, *in.FarmerID)
		if err != nil {
			return err
		}
		if farmer.Role != domain.RoleFarmer {
			return domain.ErrInvalidRole
		}
	}
	if in.FarmID != nil {
		if _, err := s.farmRepo.FindByID(ctx, *in.FarmID); err != nil {
			return err
		}
	}
	if in.FieldID != nil {
		if _, err := s.fieldRepo.FindByID(ctx, *in.FieldID); err != nil {
			return err
		}
	}
	if in.DeviceID != nil {
		if _, err := s.deviceRepo.FindByID(ctx, *in.DeviceID); err != nil {
			return err
		}
	}
	return nil
}

// Get implements domain.AlertService
func (s *AlertServiceImpl) Get(ctx context.Context, auth domain.AuthContext, id uint) (*domain.Alert, error) {
	alert, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanViewAlert(ctx, auth, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// Update implements domain.AlertService. All checks happen before the
// single-statement write, so a rejected request has no partial effect.
func (s *AlertServiceImpl) Update(ctx context.Context, auth domain.AuthContext, id uint, update *domain.AlertUpdate) (*domain.Alert, error) {
	if update.IsEmpty() {
		return nil, domain.ErrNothingToUpdate
	}
	if update.Severity != nil && !update.Severity.IsValid() {
		return nil, domain.ErrInvalidSeverity
	}
	if update.Status != nil && !update.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	alert, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.CanViewAlert(ctx, auth, alert); err != nil {
		return nil, err
	}
	if err := s.accessSvc.ValidateAlertUpdate(auth, update); err != nil {
		return nil, err
	}

	now := s.now()
	if update.AlertType != nil {
		alert.AlertType = *update.AlertType
	}
	if update.Severity != nil {
		alert.Severity = *update.Severity
	}
	if update.Message != nil {
		alert.Message = *update.Message
	}
	if update.Details != nil {
		alert.Details = update.Details
	}
	if update.Status != nil {
		alert.Status = *update.Status
		switch *update.Status {
		case domain.StatusAcknowledged:
			ack := now
			alert.AcknowledgedAt = &ack
		case domain.StatusResolved, domain.StatusClosed:
			res := now
			alert.ResolvedAt = &res
		}
	}
	alert.UpdatedAt = now

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	return alert, nil
}

// List implements domain.AlertService. The caller's visibility scope is
// applied before any explicit filter; a farmer supplying farmerId still only
// sees alerts inside their own scope.
func (s *AlertServiceImpl) List(ctx context.Context, auth domain.AuthContext, filter domain.AlertFilter) ([]*domain.Alert, error) {
	scope := s.accessSvc.AlertScopeFor(auth)
	return s.alertRepo.List(ctx, scope, filter)
}

// notifyCritical sends a best-effort SMS to the farmer the alert resolves
// to. Delivery failure never fails the create.
func (s *AlertServiceImpl) notifyCritical(ctx context.Context, alert *domain.Alert) {
	farmerID, ok := s.resolveFarmer(ctx, alert)
	if !ok {
		return
	}
	farmer, err := s.userRepo.FindByID(ctx, farmerID)
	if err != nil || farmer.Phone == "" {
		return
	}
	msg := fmt.Sprintf("CRITICAL %s alert: %s", alert.AlertType, alert.Message)
	if err := s.notifySvc.SendSMS(farmer.Phone, msg); err != nil {
		log.Printf("ALERT_SMS_FAILED: alert_id=%d farmer_id=%d error=%v", alert.ID, farmerID, err)
	}
}

func (s *AlertServiceImpl) resolveFarmer(ctx context.Context, alert *domain.Alert) (uint, bool) {
	if alert.FarmerID != nil {
		return *alert.FarmerID, true
	}
	if alert.FarmID != nil {
		if owner, err := s.accessSvc.FarmOwner(ctx, *alert.FarmID); err == nil {
			return owner, true
		}
	}
	if alert.DeviceID != nil {
		if owner, err := s.accessSvc.DeviceOwner(ctx, *alert.DeviceID); err == nil {
			return owner, true
		}
	}
	return 0, false
}
