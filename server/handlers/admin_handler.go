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
	"bloodbank-backend/shared/database/repositories"
	"bloodbank-backend/shared/utils/query"
)

type AdminHandler struct {
	db        *gorm.DB
	lifecycle *services.LifecycleService
	stats     *services.StatsService
}

func NewAdminHandler(db *gorm.DB, lifecycle *services.LifecycleService, stats *services.StatsService) *AdminHandler {
	return &AdminHandler{db: db, lifecycle: lifecycle, stats: stats}
}

// AdminUserResponse is the user shape listed to admins
type AdminUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateUserStatusRequest carries an admin's account status change
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required" example:"inactive"`
}

// UpdateRequestPriorityRequest carries an admin's urgency override
type UpdateRequestPriorityRequest struct {
	Urgency string `json:"urgency" binding:"required" example:"urgent"`
}

// AdminSetRequestStatusRequest carries an admin's status override
type AdminSetRequestStatusRequest struct {
	Status string `json:"status" binding:"required" example:"cancelled"`
}

// CompleteDonationRequest carries the medical readings recorded at completion
type CompleteDonationRequest struct {
	HemoglobinLevel float64 `json:"hemoglobin_level" example:"13.5"`
	BloodPressure   string  `json:"blood_pressure" example:"120/80"`
	PulseRate       int     `json:"pulse_rate" example:"72"`
	Notes           string  `json:"notes"`
}

// AdminRequestRow is a blood request joined with its requester's identity
type AdminRequestRow struct {
	ID             uuid.UUID `json:"id"`
	BloodType      string    `json:"blood_type"`
	Units          int       `json:"units"`
	Urgency        string    `json:"urgency"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	RequesterName  string    `json:"requester_name"`
	RequesterEmail string    `json:"requester_email"`
}

// AdminDonationRow is a donation joined with its donor and request
type AdminDonationRow struct {
	ID               uuid.UUID `json:"id"`
	DonationDate     time.Time `json:"donation_date"`
	Status           string    `json:"status"`
	HemoglobinLevel  float64   `json:"hemoglobin_level"`
	BloodPressure    string    `json:"blood_pressure"`
	PulseRate        int       `json:"pulse_rate"`
	Notes            string    `json:"notes"`
	DonorName        string    `json:"donor_name"`
	BloodType        string    `json:"blood_type"`
	Units            int       `json:"units"`
	DonationLocation string    `json:"donation_location"`
}

// GET /api/admin/users
// @Summary List all users
// @Description List users with pagination, filtering, sorting and search
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search across name and email"
// @Param filters[role] query string false "Filter by role (donor, requester, admin)"
// @Param filters[status] query string false "Filter by status (active, inactive)"
// @Param sort[field] query string false "Sort field (name, email, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	params := query.ParseQueryParams(c)

	allowedFilters := map[string]string{
		"role":   "role",
		"status": "status",
	}

	allowedSortFields := map[string]string{
		"name":       "name",
		"email":      "email",
		"role":       "role",
		"status":     "status",
		"created_at": "created_at",
	}

	searchFields := []string{"name", "email"}

	baseQuery := h.db.Model(&models.User{})
	filteredQuery := query.ApplyFilters(baseQuery, params.Filters, allowedFilters)
	searchedQuery := query.ApplySearch(filteredQuery, params.Search, searchFields)

	var total int64
	searchedQuery.Count(&total)

	finalQuery := query.ApplySort(searchedQuery, params.Sort, allowedSortFields)
	finalQuery = query.ApplyPagination(finalQuery, params.Page, params.Limit)

	var users []models.User
	if err := finalQuery.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	items := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, AdminUserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			Status:    user.Status,
			Location:  user.Location,
			Phone:     user.Phone,
			CreatedAt: user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
	})
}

// PUT /api/admin/users/:userId
// @Summary Update a user's account status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param status body UpdateUserStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /admin/users/{userId} [put]
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidUserStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	result := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", req.Status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user status"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully"})
}

// GET /api/admin/stats
// @Summary Get system statistics
// @Description Dashboard rollups; served from the Redis snapshot when warm
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Stats
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GET /api/admin/requests
// @Summary List all blood requests
// @Description List requests with requester identity, pagination and filtering
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search across requester name and email"
// @Param filters[status] query string false "Filter by status"
// @Param filters[urgency] query string false "Filter by urgency"
// @Param filters[blood_type] query string false "Filter by blood type"
// @Success 200 {object} map[string]interface{}
// @Router /admin/requests [get]
func (h *AdminHandler) GetRequests(c *gin.Context) {
	params := query.ParseQueryParams(c)

	allowedFilters := map[string]string{
		"status":     "blood_requests.status",
		"urgency":    "blood_requests.urgency",
		"blood_type": "blood_requests.blood_type",
	}

	allowedSortFields := map[string]string{
		"created_at": "blood_requests.created_at",
		"urgency":    "blood_requests.urgency",
		"status":     "blood_requests.status",
	}

	searchFields := []string{"users.name", "users.email"}

	baseQuery := h.db.Table("blood_requests").
		Select("blood_requests.id, blood_requests.blood_type, blood_requests.units, blood_requests.urgency, blood_requests.location, blood_requests.status, blood_requests.created_at, users.name AS requester_name, users.email AS requester_email").
		Joins("JOIN users ON blood_requests.requester_id = users.id")

	filteredQuery := query.ApplyFilters(baseQuery, params.Filters, allowedFilters)
	searchedQuery := query.ApplySearch(filteredQuery, params.Search, searchFields)

	var total int64
	searchedQuery.Count(&total)

	finalQuery := searchedQuery.Order("blood_requests.created_at DESC")
	if _, sorted := allowedSortFields[params.Sort.Field]; sorted {
		finalQuery = query.ApplySort(searchedQuery, params.Sort, allowedSortFields)
	}
	finalQuery = query.ApplyPagination(finalQuery, params.Page, params.Limit)

	var requests []AdminRequestRow
	if err := finalQuery.Scan(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      requests,
		"pagination": query.BuildPaginationResponse(params.Page, params.Limit, total),
	})
}

// PUT /api/admin/requests/:requestId/priority
// @Summary Override a request's urgency
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param priority body UpdateRequestPriorityRequest true "New urgency"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Request not found"
// @Router /admin/requests/{requestId}/priority [put]
func (h *AdminHandler) UpdateRequestPriority(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	var req UpdateRequestPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lifecycle.AdminSetRequestPriority(c.Request.Context(), caller, requestID, req.Urgency); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request priority updated successfully"})
}

// PUT /api/admin/requests/:requestId/status
// @Summary Override a request's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param status body AdminSetRequestStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /admin/requests/{requestId}/status [put]
func (h *AdminHandler) UpdateRequestStatus(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	var req AdminSetRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lifecycle.AdminSetRequestStatus(c.Request.Context(), caller, requestID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request status updated successfully"})
}

// PUT /api/admin/donations/:donationId/complete
// @Summary Complete a donation
// @Description Marks the donation and its request completed in one atomic unit
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param donationId path string true "Donation ID"
// @Param vitals body CompleteDonationRequest true "Medical readings"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Donation not found"
// @Router /admin/donations/{donationId}/complete [put]
func (h *AdminHandler) CompleteDonation(c *gin.Context) {
	caller := services.Caller{ID: middleware.CallerID(c), Role: middleware.CallerRole(c)}

	donationID, ok := parseIDParam(c, "donationId")
	if !ok {
		return
	}

	var req CompleteDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vitals := repositories.DonationVitals{
		HemoglobinLevel: req.HemoglobinLevel,
		BloodPressure:   req.BloodPressure,
		PulseRate:       req.PulseRate,
		Notes:           req.Notes,
	}

	if err := h.lifecycle.CompleteDonation(c.Request.Context(), caller, donationID, vitals); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Donation completed successfully",
		"donationId": donationID,
	})
}

// GET /api/admin/donations
// @Summary List all donations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.AdminDonationRow
// @Router /admin/donations [get]
func (h *AdminHandler) GetDonations(c *gin.Context) {
	var donations []AdminDonationRow
	err := h.db.Table("donations").
		Select("donations.id, donations.donation_date, donations.status, donations.hemoglobin_level, donations.blood_pressure, donations.pulse_rate, donations.notes, users.name AS donor_name, blood_requests.blood_type, blood_requests.units, blood_requests.location AS donation_location").
		Joins("JOIN users ON donations.donor_id = users.id").
		Joins("JOIN blood_requests ON donations.request_id = blood_requests.id").
		Order("donations.donation_date DESC").
		Scan(&donations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}
