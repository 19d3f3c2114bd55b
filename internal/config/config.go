package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Kiosk    KioskConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	KioskID            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	OpsEmail   string
}

type KioskConfig struct {
	// IdleTimeout is how long without any touch before the attract loop.
	IdleTimeout time.Duration
	// IdleCheckInterval is the cadence of the idle check ticker.
	IdleCheckInterval time.Duration
	// TransitionDuration is the viewpoint transition length.
	TransitionDuration time.Duration
	// FrameTick is the animator frame interval pushed to the renderer.
	FrameTick time.Duration
	// SaveDebounce coalesces rapid bounds edits into one persistence write.
	SaveDebounce time.Duration
	// CloseThresholdPct is the aspect-compensated distance (percent units)
	// within which a click on the first vertex closes a polygon.
	CloseThresholdPct float64
	// DefaultLanguage is the fallback for bilingual content lookups.
	DefaultLanguage string
	// AlertThreshold is how many save failures inside AlertWindow trigger
	// one ops email.
	AlertThreshold int
	AlertWindow    time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/kiosk.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			KioskID:            getEnv("KIOSK_ID", "pumphouse-01"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "PumphouseKiosk"),
			OpsEmail:   getEnv("OPS_ALERT_EMAIL", ""),
		},
		Kiosk: KioskConfig{
			IdleTimeout:        getEnvAsDuration("KIOSK_IDLE_TIMEOUT_MS", 120_000),
			IdleCheckInterval:  getEnvAsDuration("KIOSK_IDLE_CHECK_MS", 5_000),
			TransitionDuration: getEnvAsDuration("KIOSK_TRANSITION_MS", 2_000),
			FrameTick:          getEnvAsDuration("KIOSK_FRAME_TICK_MS", 16),
			SaveDebounce:       getEnvAsDuration("KIOSK_SAVE_DEBOUNCE_MS", 400),
			CloseThresholdPct:  getEnvAsFloat("KIOSK_CLOSE_THRESHOLD_PCT", 2.0),
			DefaultLanguage:    getEnv("KIOSK_DEFAULT_LANGUAGE", "de"),
			AlertThreshold:     getEnvAsInt("KIOSK_ALERT_THRESHOLD", 5),
			AlertWindow:        getEnvAsDuration("KIOSK_ALERT_WINDOW_MS", 600_000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallbackMs)) * time.Millisecond
}
