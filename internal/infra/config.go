package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Association identity printed on receipts and mail bodies.
	AssociationName    string
	AssociationAddress string
	AssociationObject  string
	DonationPurpose    string

	// Outbound mail addressing.
	MailFrom       string
	MailReplyTo    string
	MailArchiveBCC string
	ResendAPIKey   string
	ResendBaseURL  string

	// Receipt archive storage. Backend is "s3" or "filesystem".
	StorageBackend string
	StoragePath    string
	StorageBaseURL string
	S3Bucket       string
	S3Region       string

	GeoIPDBPath        string
	CORSAllowedOrigins []string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int

	// Soft ordering hint between the receipt write and the outbox insert.
	MailEnqueueDelay   time.Duration
	WorkerPollInterval time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		AssociationName:    getEnv("ASSOCIATION_NAME", "ASSOCIATION MIM"),
		AssociationAddress: getEnv("ASSOCIATION_ADDRESS", "2 Place Victor Hugo, 95400 Villiers-le-Bel"),
		AssociationObject:  getEnv("ASSOCIATION_OBJECT", "Religion"),
		DonationPurpose: getEnv("DONATION_PURPOSE",
			"UTILISATION PRÉVUE DU DON : CONSTRUCTION DE MOSQUÉE POUR L'ASSOCIATION MIM."),

		MailFrom:       getEnv("MAIL_FROM", "Association MIM <no.reply.masjidquba@gmail.com>"),
		MailReplyTo:    getEnv("MAIL_REPLY_TO", "no.reply.masjidquba@gmail.com"),
		MailArchiveBCC: getEnv("MAIL_ARCHIVE_BCC", "no.reply.masjidquba@gmail.com"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ResendBaseURL:  getEnv("RESEND_BASE_URL", "https://api.resend.com"),

		StorageBackend: getEnv("STORAGE_BACKEND", "filesystem"),
		StoragePath:    getEnv("STORAGE_PATH", "./storage"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnv("AWS_REGION", "eu-west-3"),

		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),

		MailEnqueueDelay:   time.Millisecond * time.Duration(getEnvInt("MAIL_ENQUEUE_DELAY_MS", 200)),
		WorkerPollInterval: time.Second * time.Duration(getEnvInt("WORKER_POLL_INTERVAL_SECONDS", 5)),
	}

	cfg.StorageBaseURL = getEnv("STORAGE_BASE_URL", "http://localhost:"+cfg.Port+"/static")

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.StorageBackend {
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	case "filesystem":
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
