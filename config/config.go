package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLimitComments = 20
	MaxLimitComments     = 100
)

type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	StoreTimeout time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins    string
	MaxUploadMB    int
	LogLevel       string
	RequestTimeout time.Duration

	CreatorUsername string
	CreatorName     string
	CreatorEmail    string
	CreatorPassword string

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3UsePathStyle  bool
	MediaPublicBase string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// LoadConfig reads .env (if present) and the process environment.
// JWT_SECRET has no default.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		MongoURI: getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "igram"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		CreatorUsername: getEnv("CREATOR_USERNAME", "creator"),
		CreatorName:     getEnv("CREATOR_NAME", "Omer"),
		CreatorEmail:    getEnv("CREATOR_EMAIL", "creator@igram.com"),
		CreatorPassword: getEnv("CREATOR_PASSWORD", "creator123"),

		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", "igram-media"),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		MediaPublicBase: getEnv("MEDIA_PUBLIC_BASE_URL", ""),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.MaxUploadMB, err = getInt("MAX_UPLOAD_MB", 100); err != nil {
		return Config{}, err
	}
	if cfg.S3UsePathStyle, err = getBool("S3_USE_PATH_STYLE", cfg.S3Endpoint != ""); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
