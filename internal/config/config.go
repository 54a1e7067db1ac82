package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"kakeibo/internal/models"
)

// Config holds application configuration
type Config struct {
	// Server
	Env             string
	Port            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Categories offered to clients as suggestions
	Categories []string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		// Database
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "kakeibo"),
		DBPassword: getEnv("DB_PASSWORD", "kakeibo"),
		DBName:     getEnv("DB_NAME", "kakeibo"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "kakeibo.db"),
	}

	switch config.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", config.DBDriver)
	}

	timeoutStr := getEnv("SHUTDOWN_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		log.Printf("Warning: invalid SHUTDOWN_TIMEOUT value '%s', falling back to 15s\n", timeoutStr)
		timeout = 15 * time.Second
	}
	config.ShutdownTimeout = timeout

	categories, err := LoadCategories(os.Getenv("CATEGORIES_FILE"))
	if err != nil {
		return nil, err
	}
	config.Categories = categories

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// categoriesFile is the YAML layout of CATEGORIES_FILE.
type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// LoadCategories reads the suggested category list from a YAML file. An
// empty path returns the built-in list.
func LoadCategories(path string) ([]string, error) {
	if path == "" {
		return append([]string(nil), models.SuggestedCategories...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}

	var categories []string
	seen := make(map[string]bool)
	for _, c := range file.Categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("categories file %s lists no categories", path)
	}
	return categories, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
