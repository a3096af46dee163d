package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/http/middleware"
)

// AlertHandlers handles alert HTTP requests
type AlertHandlers struct {
	alertSvc domain.AlertService
}

// NewAlertHandlers creates new alert handlers
func NewAlertHandlers(alertSvc domain.AlertService) *AlertHandlers {
	return &AlertHandlers{alertSvc: alertSvc}
}

// AlertCreateRequest represents manual alert creation
type AlertCreateRequest struct {
	AlertType string                 `json:"alert_type" binding:"required"`
	Severity  string                 `json:"severity,omitempty"`
	Message   string                 `json:"message" binding:"required"`
	Details   map[string]interface{} `json:"details,omitempty"`
	FarmerID  *uint                  `json:"farmer_id,omitempty"`
	DeviceID  *uint                  `json:"device_id,omitempty"`
	FarmID    *uint                  `json:"farm_id,omitempty"`
	FieldID   *uint                  `json:"field_id,omitempty"`
}

// AlertUpdateRequest represents a partial alert mutation. Absent fields stay
// untouched; for farmers anything besides status is rejected downstream.
type AlertUpdateRequest struct {
	AlertType *string                `json:"alert_type,omitempty"`
	Severity  *string                `json:"severity,omitempty"`
	Message   *string                `json:"message,omitempty"`
	Status    *string                `json:"status,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

func alertBody(alert *domain.Alert) gin.H {
	return gin.H{
		"id":                 alert.ID,
		"alert_type":         alert.AlertType,
		"severity":           alert.Severity,
		"message":            alert.Message,
		"status":             alert.Status,
		"details":            alert.Details,
		"farmer_id":          alert.FarmerID,
		"device_id":          alert.DeviceID,
		"farm_id":            alert.FarmID,
		"field_id":           alert.FieldID,
		"created_by_user_id": alert.CreatedByUserID,
		"acknowledged_at":    alert.AcknowledgedAt,
		"resolved_at":        alert.ResolvedAt,
		"created_at":         alert.CreatedAt,
		"updated_at":         alert.UpdatedAt,
	}
}

func alertListBody(alerts []*domain.Alert) []gin.H {
	body := make([]gin.H, 0, len(alerts))
	for _, alert := range alerts {
		body = append(body, alertBody(alert))
	}
	return body
}

// Create handles POST /alerts
func (h *AlertHandlers) Create(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	var req AlertCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	alert, err := h.alertSvc.Create(c.Request.Context(), auth, domain.AlertCreateInput{
		AlertType: req.AlertType,
		Severity:  domain.AlertSeverity(req.Severity),
		Message:   req.Message,
		Details:   req.Details,
		FarmerID:  req.FarmerID,
		DeviceID:  req.DeviceID,
		FarmID:    req.FarmID,
		FieldID:   req.FieldID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, alertBody(alert))
}

// Get handles GET /alerts/:id
func (h *AlertHandlers) Get(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid alert id"})
		return
	}

	alert, err := h.alertSvc.Get(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alertBody(alert))
}

// Update handles PUT /alerts/:id
func (h *AlertHandlers) Update(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid alert id"})
		return
	}

	var req AlertUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	update := &domain.AlertUpdate{
		AlertType: req.AlertType,
		Message:   req.Message,
		Details:   req.Details,
	}
	if req.Severity != nil {
		sev := domain.AlertSeverity(*req.Severity)
		update.Severity = &sev
	}
	if req.Status != nil {
		st := domain.AlertStatus(*req.Status)
		update.Status = &st
	}

	alert, err := h.alertSvc.Update(c.Request.Context(), auth, id, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alertBody(alert))
}

// List handles GET /alerts with optional filters
func (h *AlertHandlers) List(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	filter := domain.AlertFilter{
		Status:    domain.AlertStatus(c.Query("status")),
		Severity:  domain.AlertSeverity(c.Query("severity")),
		AlertType: c.Query("alertType"),
	}
	for query, target := range map[string]**uint{
		"farmerId": &filter.FarmerID,
		"deviceId": &filter.DeviceID,
		"farmId":   &filter.FarmID,
		"fieldId":  &filter.FieldID,
	} {
		raw := c.Query(query)
		if raw == "" {
			continue
		}
		id, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + query})
			return
		}
		*target = &id
	}

	alerts, err := h.alertSvc.List(c.Request.Context(), auth, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alertListBody(alerts))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
