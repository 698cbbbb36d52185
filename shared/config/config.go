package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	ServerPort string

	// JWT
	JWTSecret      string
	JWTExpireHours string

	// Admin bootstrap
	AdminEmail    string
	AdminPassword string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       string

	// Stats cache
	StatsCacheTTLSeconds string

	// Login Rate Limiting
	LoginRateLimitMaxAttempts   string
	LoginRateLimitWindowSeconds string
	LoginRateLimitBlockMinutes  string

	// Register Rate Limiting
	RegisterRateLimitMaxAttempts string
	RegisterRateLimitWindowHours string
	RegisterRateLimitBlockHours  string
}

var cfg *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("✅ Environment loaded from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg = &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "blood_bank_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Server
		ServerPort: getEnv("SERVER_PORT", "5001"),

		// JWT
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-this"),
		JWTExpireHours: getEnv("JWT_EXPIRE_HOURS", "24"),

		// Admin bootstrap
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@bloodbank.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		// Stats cache
		StatsCacheTTLSeconds: getEnv("STATS_CACHE_TTL_SECONDS", "300"),

		// Login Rate Limiting
		LoginRateLimitMaxAttempts:   getEnv("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", "5"),
		LoginRateLimitWindowSeconds: getEnv("LOGIN_RATE_LIMIT_WINDOW_SECONDS", "300"),
		LoginRateLimitBlockMinutes:  getEnv("LOGIN_RATE_LIMIT_BLOCK_MINUTES", "30"),

		// Register Rate Limiting
		RegisterRateLimitMaxAttempts: getEnv("REGISTER_RATE_LIMIT_MAX_ATTEMPTS", "10"),
		RegisterRateLimitWindowHours: getEnv("REGISTER_RATE_LIMIT_WINDOW_HOURS", "1"),
		RegisterRateLimitBlockHours:  getEnv("REGISTER_RATE_LIMIT_BLOCK_HOURS", "24"),
	}

	log.Println("✅ Configuration loaded successfully")
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if cfg == nil {
		LoadConfig()
	}
	return cfg
}

// GetStatsCacheTTL returns the stats cache TTL as a duration
func (c *Config) GetStatsCacheTTL() time.Duration {
	if seconds := atoiOrDefault(c.StatsCacheTTLSeconds, 300); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 5 * time.Minute
}

// GetLoginRateLimitMaxAttempts returns the login rate limit as integer
func (c *Config) GetLoginRateLimitMaxAttempts() int {
	return atoiOrDefault(c.LoginRateLimitMaxAttempts, 5)
}

// GetLoginRateLimitWindow returns the login rate limit window as duration
func (c *Config) GetLoginRateLimitWindow() time.Duration {
	return time.Duration(atoiOrDefault(c.LoginRateLimitWindowSeconds, 300)) * time.Second
}

// GetLoginRateLimitBlockDuration returns the login block duration
func (c *Config) GetLoginRateLimitBlockDuration() time.Duration {
	return time.Duration(atoiOrDefault(c.LoginRateLimitBlockMinutes, 30)) * time.Minute
}

// GetRegisterRateLimitMaxAttempts returns the registration rate limit as integer
func (c *Config) GetRegisterRateLimitMaxAttempts() int {
	return atoiOrDefault(c.RegisterRateLimitMaxAttempts, 10)
}

// GetRegisterRateLimitWindow returns the registration rate limit window as duration
func (c *Config) GetRegisterRateLimitWindow() time.Duration {
	return time.Duration(atoiOrDefault(c.RegisterRateLimitWindowHours, 1)) * time.Hour
}

// GetRegisterRateLimitBlockDuration returns the registration block duration
func (c *Config) GetRegisterRateLimitBlockDuration() time.Duration {
	return time.Duration(atoiOrDefault(c.RegisterRateLimitBlockHours, 24)) * time.Hour
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoiOrDefault(value string, defaultValue int) int {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}
