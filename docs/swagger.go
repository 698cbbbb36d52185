// Package docs Blood Bank API documentation
package docs

// Swagger documentation info
// @title Blood Bank API
// @version 1.0
// @description Blood donation coordination backend for donors, requesters and administrators
// @termsOfService http://swagger.io/terms/

// @host localhost:5001
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// Authentication Endpoints
// @tag.name auth
// @tag.description Registration and login

// Donor Endpoints
// @tag.name donors
// @tag.description Donor profile, availability, matching and donation history

// Requester Endpoints
// @tag.name requests
// @tag.description Blood request lifecycle owned by requesters
// @tag.name requesters
// @tag.description Requester profile management

// Admin Endpoints
// @tag.name admin
// @tag.description User administration, request oversight, donation completion and statistics
