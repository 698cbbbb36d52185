package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bloodbank-backend/shared/apperrors"
)

// respondError maps a service error to its HTTP status. Internal failures
// are logged server-side and surfaced with a generic message only.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	message := "Something went wrong!"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, gin.H{"error": message})
}

// parseIDParam parses a uuid path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
