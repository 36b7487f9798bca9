package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBookCategories is the category list used when BOOK_CATEGORIES is unset.
var DefaultBookCategories = []string{
	"Web develop",
	"AI",
	"Information technology",
	"Data engineering",
	"MS office",
	"Graphic design",
	"Full stacks",
	"Programing language",
}

// Config holds application configuration
type Config struct {
	Port string

	DBDriver   string // postgres, mysql or sqlite
	DBDsn      string // overrides the DB_HOST/DB_USER/... parts when set
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey      string
	CorsOrigins []string

	LogLevel  string
	LogFormat string

	CertificateTemplatePath    string
	CertificateFontPath        string
	CertificateDateFormat      string
	CertificateRequireApproval bool

	CourseCatalogURL     string
	CourseCatalogTimeout time.Duration

	SendGridAPIKey string
	EmailSender    string
	EducatorEmail  string
	DigestCron     string

	UploadDir      string
	BookCategories []string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig loads the .env file, builds the configuration and stores it in AppConfig
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = Load()

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	return AppConfig
}

// Load builds the configuration from the current environment
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBDsn:      getEnv("DB_DSN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "learnhub"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),
		CorsOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		CertificateTemplatePath:    getEnv("CERTIFICATE_TEMPLATE_PATH", "assets/CompletionCertificate.png"),
		CertificateFontPath:        getEnv("CERTIFICATE_FONT_PATH", ""),
		CertificateDateFormat:      getEnv("CERTIFICATE_DATE_FORMAT", "1/2/2006"),
		CertificateRequireApproval: getEnvBool("CERTIFICATE_REQUIRE_APPROVAL", true),

		CourseCatalogURL:     getEnv("COURSE_CATALOG_URL", ""),
		CourseCatalogTimeout: getEnvDuration("COURSE_CATALOG_TIMEOUT", 5*time.Second),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@learnhub.local"),
		EducatorEmail:  getEnv("EDUCATOR_EMAIL", ""),
		DigestCron:     getEnv("CERTIFICATE_DIGEST_CRON", "0 9 * * *"),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		BookCategories: getEnvList("BOOK_CATEGORIES", DefaultBookCategories),
	}
}

// HasCategory reports whether name is one of the configured book categories
func (c *Config) HasCategory(name string) bool {
	for _, category := range c.BookCategories {
		if category == name {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

// getEnvDuration accepts Go durations ("5s") or a plain number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
