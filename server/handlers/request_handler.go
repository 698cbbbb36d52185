package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bloodbank-backend/server/middleware"
	"bloodbank-backend/server/services"
	"bloodbank-backend/shared/database/models"
)

type RequestHandler struct {
	db        *gorm.DB
	lifecycle *services.LifecycleService
}

func NewRequestHandler(db *gorm.DB, lifecycle *services.LifecycleService) *RequestHandler {
	return &RequestHandler{db: db, lifecycle: lifecycle}
}

// CreateBloodRequestRequest carries a new blood request's fields
type CreateBloodRequestRequest struct {
	BloodType string `json:"bloodType" binding:"required" example:"O-"`
	Units     int    `json:"units" binding:"required" example:"2"`
	Urgency   string `json:"urgency" binding:"required" example:"emergency"`
	Location  string `json:"location" example:"City Hospital"`
	Notes     string `json:"notes"`
}

// UpdateRequestStatusRequest carries a requester's status change
type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required" example:"cancelled"`
}

// POST /api/requests
// @Summary Create a blood request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBloodRequestRequest true "Request fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid blood type, urgency or units"
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	var req CreateBloodRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.lifecycle.CreateRequest(c.Request.Context(), caller, services.CreateRequestInput{
		BloodType: req.BloodType,
		Units:     req.Units,
		Urgency:   req.Urgency,
		Location:  req.Location,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Blood request created successfully",
		"requestId": request.ID,
		"request":   request,
	})
}

// GET /api/requests/my-requests
// @Summary List own blood requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.BloodRequest
// @Router /requests/my-requests [get]
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	userID := middleware.CallerID(c)

	var requests []models.BloodRequest
	if err := h.db.Where("requester_id = ?", userID).Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GET /api/requests/:requestId/matches
// @Summary List available donors matching a request's blood type
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {array} repositories.DonorMatch
// @Failure 404 {object} map[string]string "Request not found"
// @Router /requests/{requestId}/matches [get]
func (h *RequestHandler) GetMatches(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	matches, err := h.lifecycle.MatchDonors(c.Request.Context(), caller, requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// PUT /api/requests/:requestId
// @Summary Update the status of an own request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param status body UpdateRequestStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Request not found or unauthorized"
// @Router /requests/{requestId} [put]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	var req UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lifecycle.UpdateRequestStatus(c.Request.Context(), caller, requestID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request updated successfully"})
}

// DELETE /api/requests/:requestId
// @Summary Delete an own pending request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Request not found, unauthorized, or cannot be deleted"
// @Router /requests/{requestId} [delete]
func (h *RequestHandler) Delete(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	if err := h.lifecycle.DeleteRequest(c.Request.Context(), caller, requestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}
