package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
	"github.com/you/agrialert/internal/http/middleware"
)

// FarmHandlers handles farm and field HTTP requests
type FarmHandlers struct {
	farmSvc  domain.FarmService
	fieldSvc domain.FieldService
}

// NewFarmHandlers creates new farm handlers
func NewFarmHandlers(farmSvc domain.FarmService, fieldSvc domain.FieldService) *FarmHandlers {
	return &FarmHandlers{farmSvc: farmSvc, fieldSvc: fieldSvc}
}

// FarmRequest represents farm creation/update
type FarmRequest struct {
	FarmerID        uint     `json:"farmer_id,omitempty"`
	Name            string   `json:"name,omitempty"`
	Address         string   `json:"address,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	BoundaryGeoJSON string   `json:"boundary,omitempty"`
}

// FieldRequest represents field creation/update
type FieldRequest struct {
	Name             string   `json:"name,omitempty"`
	CropType         string   `json:"crop_type,omitempty"`
	PlantingDate     *string  `json:"planting_date,omitempty"`
	SoilType         string   `json:"soil_type,omitempty"`
	IrrigationMethod string   `json:"irrigation_method,omitempty"`
	BoundaryGeoJSON  string   `json:"boundary,omitempty"`
	AreaHectares     *float64 `json:"area_hectares,omitempty"`
}

func (r *FieldRequest) toDomain(c *gin.Context) (*domain.Field, bool) {
	field := &domain.Field{
		Name:             r.Name,
		CropType:         r.CropType,
		SoilType:         r.SoilType,
		IrrigationMethod: r.IrrigationMethod,
		BoundaryGeoJSON:  r.BoundaryGeoJSON,
		AreaHectares:     r.AreaHectares,
	}
	if r.PlantingDate != nil {
		planted, err := time.Parse("2006-01-02", *r.PlantingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "planting_date must be YYYY-MM-DD"})
			return nil, false
		}
		field.PlantingDate = &planted
	}
	return field, true
}

// CreateFarm handles POST /farms
func (h *FarmHandlers) CreateFarm(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	var req FarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	farm, err := h.farmSvc.Create(c.Request.Context(), auth, &domain.Farm{
		FarmerID:        req.FarmerID,
		Name:            req.Name,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		BoundaryGeoJSON: req.BoundaryGeoJSON,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, farm)
}

// GetFarm handles GET /farms/:id
func (h *FarmHandlers) GetFarm(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid farm id"})
		return
	}

	farm, err := h.farmSvc.Get(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, farm)
}

// ListFarms handles GET /farms
func (h *FarmHandlers) ListFarms(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	farms, err := h.farmSvc.List(c.Request.Context(), auth)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, farms)
}

// UpdateFarm handles PUT /farms/:id
func (h *FarmHandlers) UpdateFarm(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid farm id"})
		return
	}

	var req FarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	farm, err := h.farmSvc.Update(c.Request.Context(), auth, id, &domain.Farm{
		Name:            req.Name,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		BoundaryGeoJSON: req.BoundaryGeoJSON,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, farm)
}

// CreateField handles POST /farms/:id/fields
func (h *FarmHandlers) CreateField(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	farmID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid farm id"})
		return
	}

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	field, ok := req.toDomain(c)
	if !ok {
		return
	}

	created, err := h.fieldSvc.Create(c.Request.Context(), auth, farmID, field)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListFields handles GET /farms/:id/fields
func (h *FarmHandlers) ListFields(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	farmID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid farm id"})
		return
	}

	fields, err := h.fieldSvc.ListByFarm(c.Request.Context(), auth, farmID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}

// GetField handles GET /fields/:id
func (h *FarmHandlers) GetField(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid field id"})
		return
	}

	field, err := h.fieldSvc.Get(c.Request.Context(), auth, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

// UpdateField handles PUT /fields/:id
func (h *FarmHandlers) UpdateField(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity not found in request context"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid field id"})
		return
	}

	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	field, ok := req.toDomain(c)
	if !ok {
		return
	}

	updated, err := h.fieldSvc.Update(c.Request.Context(), auth, id, field)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
