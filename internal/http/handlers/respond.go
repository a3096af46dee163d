package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrialert/domain"
)

var statusByError = map[error]int{
	domain.ErrEmailRequired:    http.StatusBadRequest,
	domain.ErrPhoneRequired:    http.StatusBadRequest,
	domain.ErrInvalidRole:      http.StatusBadRequest,
	domain.ErrNothingToUpdate:  http.StatusBadRequest,
	domain.ErrAlertTypeMissing: http.StatusBadRequest,
	domain.ErrMessageMissing:   http.StatusBadRequest,
	domain.ErrInvalidSeverity:  http.StatusBadRequest,
	domain.ErrInvalidStatus:    http.StatusBadRequest,
	domain.ErrCropTypeMissing:  http.StatusBadRequest,
	domain.ErrSerialMissing:    http.StatusBadRequest,
	domain.ErrFarmerIDMissing:  http.StatusBadRequest,

	domain.ErrInvalidCredentials: http.StatusUnauthorized,
	domain.ErrTokenExpired:       http.StatusUnauthorized,

	domain.ErrTokenInvalid:   http.StatusForbidden,
	domain.ErrTokenMalformed: http.StatusForbidden,
	domain.ErrForbidden:      http.StatusForbidden,
	domain.ErrUnknownRole:    http.StatusForbidden,

	domain.ErrUserNotFound:   http.StatusNotFound,
	domain.ErrAlertNotFound:  http.StatusNotFound,
	domain.ErrFarmNotFound:   http.StatusNotFound,
	domain.ErrFieldNotFound:  http.StatusNotFound,
	domain.ErrDeviceNotFound: http.StatusNotFound,

	domain.ErrUserAlreadyExists: http.StatusConflict,
	domain.ErrDuplicateSerial:   http.StatusConflict,
}

// respondError maps a service error onto the HTTP taxonomy. Unclassified
// errors are logged and surfaced as a generic 500 so store internals never
// leak to the caller.
func respondError(c *gin.Context, err error) {
	for sentinel, status := range statusByError {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{"message": sentinel.Error()})
			return
		}
	}
	log.Printf("UNHANDLED_ERROR: method=%s path=%s error=%v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
