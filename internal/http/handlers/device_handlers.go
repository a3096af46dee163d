package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/http/middleware"
)

// DeviceHandlers handles device HTTP requests
type DeviceHandlers struct {
	deviceSvc domain.DeviceService
}

// NewDeviceHandlers creates new device handlers
func NewDeviceHandlers(deviceSvc domain.DeviceService) *DeviceHandlers {
	return &DeviceHandlers{deviceSvc: deviceSvc}
}

// DeviceRequest represents device creation/update
type DeviceRequest struct {
	SerialNumber string `json:"serial_number,omitempty"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status,omitempty"`
	FarmID       *uint  `json:"farm_id,omitempty"`
	FarmerID     *uint  `json:"farmer_id,omitempty"`
}

func (r *DeviceRequest) toDomain() *domain.Device {
	return &domain.Device{
		SerialNumber: r.SerialNumber,
		Name:         r.Name,
		Status:       domain.DeviceStatus(r.Status),
		FarmID:       r.FarmID,
		FarmerID:     r.FarmerID,
	}
}

// Create handles POST /devices
func (h *DeviceHandlers) Create(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.SerialNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "serial_number is required"})
		return
	}

	device, err := h.deviceSvc.Create(c.Request.Context(), auth, req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, device)
}

// Get handles GET /devices/:id
func (h *DeviceHandlers) Get(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid device id"})
		return
	}

	device, err := h.deviceSvc.Get(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// List handles GET /devices
func (h *DeviceHandlers) List(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	devices, err := h.deviceSvc.List(c.Request.Context(), auth)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, devices)
}

// Update handles PUT /devices/:id
func (h *DeviceHandlers) Update(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid device id"})
		return
	}

	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	device, err := h.deviceSvc.Update(c.Request.Context(), auth, id, req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// Delete handles DELETE /devices/:id
func (h *DeviceHandlers) Delete(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid device id"})
		return
	}

	if err := h.deviceSvc.Delete(c.Request.Context(), auth, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Heartbeat handles POST /devices/:id/heartbeat
func (h *DeviceHandlers) Heartbeat(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid device id"})
		return
	}

	device, err := h.deviceSvc.Heartbeat(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}
