package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	PublicBaseURL   string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	UploadURL string
}

type ImageKitConfig struct {
	PrivateKey string
	UploadURL  string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	DB_URL      string
	Port        string
	JWTSecret   string
	Environment string
	CorsConfig  cors.Options

	// Cross-service trust (profile-service only)
	AuthServiceURL string
	VerifyTimeout  time.Duration

	// Image storage provider: "cloudinary", "imagekit", "s3" or "disk"
	StorageProvider string
	UploadDir       string
	UploadBaseURL   string
	UploadFolder    string

	S3         S3Config
	Cloudinary CloudinaryConfig
	ImageKit   ImageKitConfig
	Google     GoogleConfig
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:      getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
		Environment: getEnv("ENV", "development"),
		CorsConfig:  CorsConfig(),

		AuthServiceURL: getEnv("AUTH_SERVICE_URL", "http://localhost:3001"),
		VerifyTimeout:  getDurationEnv("AUTH_VERIFY_TIMEOUT", 5*time.Second),

		StorageProvider: getEnv("STORAGE_PROVIDER", "disk"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL:   getEnv("UPLOAD_BASE_URL", ""),
		UploadFolder:    getEnv("UPLOAD_FOLDER", "portfolio"),

		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("S3_BUCKET_NAME", ""),
			Region:          getEnv("S3_REGION", "auto"),
			PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			UploadURL: getEnv("CLOUDINARY_UPLOAD_URL", "https://api.cloudinary.com/v1_1"),
		},
		ImageKit: ImageKitConfig{
			PrivateKey: getEnv("IMAGEKIT_PRIVATE_KEY", ""),
			UploadURL:  getEnv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3001/api/auth/google/callback"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func CorsConfig() cors.Options {
	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
