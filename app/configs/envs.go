package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	defaultPageSize         = 12
	defaultMaxProductImages = 5
)

type ENV struct {
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	Port             string
	APP_URL          string
	APP_ENV          string
	AppAuthKey       string
	AppEncKey        string
	CSRFKey          string
	UploadDir        string
	UploadURL        string
	PageSize         int
	MaxProductImages int
	LogMode          string
	LogFile          string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	env := ENV{
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           os.Getenv("DB_PORT"),
		Port:             os.Getenv("APP_PORT"),
		APP_URL:          os.Getenv("APP_URL"),
		APP_ENV:          os.Getenv("APP_ENV"),
		AppAuthKey:       os.Getenv("APP_AUTH_KEY"),
		AppEncKey:        os.Getenv("APP_ENC_KEY"),
		CSRFKey:          os.Getenv("CSRF_KEY"),
		UploadDir:        os.Getenv("UPLOAD_DIR"),
		UploadURL:        os.Getenv("UPLOAD_URL"),
		PageSize:         intOrDefault("PAGE_SIZE", defaultPageSize),
		MaxProductImages: intOrDefault("MAX_PRODUCT_IMAGES", defaultMaxProductImages),
		LogMode:          os.Getenv("LOG_MODE"),
		LogFile:          os.Getenv("LOG_FILE"),
	}

	if env.Port == "" {
		env.Port = ":8080"
	}
	if env.APP_URL == "" {
		env.APP_URL = "http://localhost" + env.Port
	}
	if env.UploadDir == "" {
		env.UploadDir = "uploads"
	}
	if env.UploadURL == "" {
		env.UploadURL = "/uploads"
	}

	return env
}

func (e ENV) IsProduction() bool {
	return e.APP_ENV == "production"
}

// intOrDefault falls back when the variable is unset, unparsable or not positive.
func intOrDefault(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := cast.ToIntE(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}
