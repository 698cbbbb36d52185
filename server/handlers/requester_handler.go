package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloodbank-backend/server/middleware"
	"bloodbank-backend/shared/database/models"
)

type RequesterHandler struct {
	db *gorm.DB
}

func NewRequesterHandler(db *gorm.DB) *RequesterHandler {
	return &RequesterHandler{db: db}
}

// RequesterProfileResponse is the account joined with the optional
// requester profile row
type RequesterProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRequesterProfileRequest carries the requester-editable fields
type UpdateRequesterProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// GET /api/requesters/profile
// @Summary Get own requester profile
// @Tags requesters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.RequesterProfileResponse
// @Failure 404 {object} map[string]string "User not found"
// @Router /requesters/profile [get]
func (h *RequesterHandler) GetProfile(c *gin.Context) {
	userID := middleware.CallerID(c)

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user profile"})
		}
		return
	}

	response := RequesterProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}

	// Profile row is created lazily; absent just means never updated
	var profile models.RequesterProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		response.Phone = profile.Phone
		response.Location = profile.Location
	}

	c.JSON(http.StatusOK, response)
}

// PUT /api/requesters/profile
// @Summary Update own requester profile
// @Description Updates the account and upserts the requester profile row in one transaction
// @Tags requesters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateRequesterProfileRequest true "Profile fields"
// @Success 200 {object} map[string]string
// @Router /requesters/profile [put]
func (h *RequesterHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.CallerID(c)

	var req UpdateRequesterProfileRequest
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

		var existing models.RequesterProfile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			profile := models.RequesterProfile{
				UserID:   userID,
				Phone:    req.Phone,
				Location: req.Location,
			}
			return tx.Create(&profile).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&models.RequesterProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{"phone": req.Phone, "location": req.Location}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
