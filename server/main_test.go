package main

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"bloodbank-backend/server/handlers"
	"bloodbank-backend/server/middleware"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	limiterConfig := middleware.RateLimitConfig{
		MaxRequests:   5,
		TimeWindow:    time.Minute,
		BlockDuration: time.Minute,
	}

	// Registering routes never touches the database, so nil dependencies are fine.
	registerRoutes(router,
		handlers.NewAuthHandler(nil),
		handlers.NewDonorHandler(nil, nil),
		handlers.NewRequestHandler(nil, nil),
		handlers.NewRequesterHandler(nil),
		handlers.NewAdminHandler(nil, nil, nil),
		middleware.NewRateLimiter(time.Hour),
		limiterConfig, limiterConfig)

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/donors/profile",
		"PUT /api/donors/profile",
		"PUT /api/donors/availability",
		"GET /api/donors/requests",
		"POST /api/donors/accept-request/:requestId",
		"GET /api/donors/history",
		"POST /api/requests",
		"GET /api/requests/my-requests",
		"GET /api/requests/:requestId/matches",
		"PUT /api/requests/:requestId",
		"DELETE /api/requests/:requestId",
		"GET /api/requesters/profile",
		"PUT /api/requesters/profile",
		"GET /api/admin/users",
		"PUT /api/admin/users/:userId",
		"GET /api/admin/stats",
		"GET /api/admin/requests",
		"PUT /api/admin/requests/:requestId/priority",
		"PUT /api/admin/requests/:requestId/status",
		"GET /api/admin/donations",
		"PUT /api/admin/donations/:donationId/complete",
		"GET /health",
		"GET /swagger/*any",
	}

	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}
