package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloodbank-backend/server/middleware"
	"bloodbank-backend/server/services"
	"bloodbank-backend/shared/database/models"
)

type DonorHandler struct {
	db        *gorm.DB
	lifecycle *services.LifecycleService
}

func NewDonorHandler(db *gorm.DB, lifecycle *services.LifecycleService) *DonorHandler {
	return &DonorHandler{db: db, lifecycle: lifecycle}
}

// DonorProfileResponse is a donor profile joined with the account's name and
// email
type DonorProfileResponse struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	BloodType        string     `json:"blood_type"`
	IsAvailable      bool       `json:"is_available"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	Location         string     `json:"location"`
	Phone            string     `json:"phone"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
}

// UpdateDonorProfileRequest carries the donor-editable profile fields
type UpdateDonorProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	BloodType string `json:"bloodType"`
	Location  string `json:"location"`
}

// UpdateAvailabilityRequest toggles the donor's match visibility
type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// DonationHistoryEntry is one donation joined with its request and requester
type DonationHistoryEntry struct {
	ID              uuid.UUID `json:"id"`
	DonorID         uuid.UUID `json:"donor_id"`
	RequestID       uuid.UUID `json:"request_id"`
	DonationDate    time.Time `json:"donation_date"`
	Status          string    `json:"status"`
	HemoglobinLevel float64   `json:"hemoglobin_level"`
	BloodPressure   string    `json:"blood_pressure"`
	PulseRate       int       `json:"pulse_rate"`
	Notes           string    `json:"notes"`
	BloodType       string    `json:"blood_type"`
	Location        string    `json:"location"`
	RequesterName   string    `json:"requester_name"`
}

// GET /api/donors/profile
// @Summary Get own donor profile
// @Tags donors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.DonorProfileResponse
// @Failure 404 {object} map[string]string "Donor profile not found"
// @Router /donors/profile [get]
func (h *DonorHandler) GetProfile(c *gin.Context) {
	userID := middleware.CallerID(c)

	var profile DonorProfileResponse
	err := h.db.Table("donor_profiles").
		Select("donor_profiles.*, users.name, users.email").
		Joins("JOIN users ON users.id = donor_profiles.user_id").
		Where("donor_profiles.user_id = ?", userID).
		Take(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donor profile not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donor profile"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PUT /api/donors/profile
// @Summary Update own donor profile
// @Description Updates the account and donor profile rows in one transaction
// @Tags donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateDonorProfileRequest true "Profile fields"
// @Success 200 {object} map[string]string
// @Router /donors/profile [put]
func (h *DonorHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.CallerID(c)

	var req UpdateDonorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{"name": req.Name, "email": req.Email}).Error; err != nil {
			return err
		}

		return tx.Model(&models.DonorProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"phone":      req.Phone,
				"blood_type": req.BloodType,
				"location":   req.Location,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// PUT /api/donors/availability
// @Summary Update donor availability
// @Tags donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param availability body UpdateAvailabilityRequest true "Availability flag"
// @Success 200 {object} map[string]string
// @Router /donors/availability [put]
func (h *DonorHandler) UpdateAvailability(c *gin.Context) {
	userID := middleware.CallerID(c)

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.db.Model(&models.DonorProfile{}).
		Where("user_id = ?", userID).
		Update("is_available", *req.IsAvailable).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated successfully"})
}

// GET /api/donors/requests
// @Summary List pending requests matching the donor's blood type
// @Description Ordered by urgency descending, then oldest first
// @Tags donors
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.BloodRequest
// @Failure 404 {object} map[string]string "Donor profile not found"
// @Router /donors/requests [get]
func (h *DonorHandler) GetMatchingRequests(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requests, err := h.lifecycle.MatchRequests(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// POST /api/donors/accept-request/:requestId
// @Summary Accept a pending blood request
// @Description Approves the request and schedules a donation in one atomic unit
// @Tags donors
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Request not found or not pending"
// @Router /donors/accept-request/{requestId} [post]
func (h *DonorHandler) AcceptRequest(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	donation, err := h.lifecycle.AcceptRequest(c.Request.Context(), caller, requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Request accepted successfully",
		"donation": donation,
	})
}

// GET /api/donors/history
// @Summary List own donation history
// @Tags donors
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.DonationHistoryEntry
// @Router /donors/history [get]
func (h *DonorHandler) GetHistory(c *gin.Context) {
	userID := middleware.CallerID(c)

	var donations []DonationHistoryEntry
	err := h.db.Table("donations").
		Select("donations.*, blood_requests.blood_type, blood_requests.location, users.name AS requester_name").
		Joins("JOIN blood_requests ON donations.request_id = blood_requests.id").
		Joins("JOIN users ON blood_requests.requester_id = users.id").
		Where("donations.donor_id = ?", userID).
		Order("donations.donation_date DESC").
		Scan(&donations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donation history"})
		return
	}

	c.JSON(http.StatusOK, donations)
}
