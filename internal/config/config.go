package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopfront/internal/models"
)

type Config struct {
	Addr            string
	DBDriver        string
	DBPath          string
	DBDSN           string
	StaticDir       string
	UploadDir       string
	LogLevel        string
	SecureCookies   bool
	SessionTTLHours int
	KafkaAddress    string
	ESURL           string
	ESUser          string
	ESPassword      string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		Addr:            getenv("ADDR", ":8080"),
		DBDriver:        getenv("DB_DRIVER", "sqlite"),
		DBPath:          getenv("DB_PATH", "shop.db"),
		DBDSN:           os.Getenv("DB_DSN"),
		StaticDir:       getenv("STATIC_DIR", "static"),
		UploadDir:       getenv("UPLOAD_DIR", "static/product_img"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		SecureCookies:   getenv("SECURE_COOKIES", "false") == "true",
		SessionTTLHours: getenvInt("SESSION_TTL_HOURS", 72),
		KafkaAddress:    os.Getenv("KAFKA_ADDRESS"),
		ESURL:           os.Getenv("ES_URL"),
		ESUser:          os.Getenv("ES_USER"),
		ESPassword:      os.Getenv("ES_PASSWORD"),
	}

	return config, nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// InitDB opens the configured database and migrates the schema. The default
// is a single local sqlite file; DB_DRIVER=postgres switches to the DSN.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Session{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
