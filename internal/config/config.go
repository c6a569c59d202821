package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Graph    GraphConfig
	Storage  StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Env   string
	Level string
}

// GraphConfig описывает доступ к OneDrive через Microsoft Graph.
type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	RefreshToken string
	DriveID      string
	RootFolder   string
	BaseURL      string
	TokenURL     string
	Timeout      time.Duration
}

type StorageConfig struct {
	LocalPath    string
	MaxAttempts  int
	SyncCron     string
	TemplateFile string
}

func Load() *Config {
	_ = godotenv.Load()

	tenant := getEnv("GRAPH_TENANT_ID", "common")

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "portal"),
			Password: getEnv("DB_PASSWORD", "portal"),
			DBName:   getEnv("DB_NAME", "staff_portal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", "dev"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Graph: GraphConfig{
			TenantID:     tenant,
			ClientID:     getEnv("GRAPH_CLIENT_ID", ""),
			ClientSecret: getEnv("GRAPH_CLIENT_SECRET", ""),
			RefreshToken: getEnv("GRAPH_REFRESH_TOKEN", ""),
			DriveID:      getEnv("GRAPH_DRIVE_ID", ""),
			RootFolder:   getEnv("GRAPH_ROOT_FOLDER", "StaffPortal"),
			BaseURL:      getEnv("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
			TokenURL:     getEnv("GRAPH_TOKEN_URL", "https://login.microsoftonline.com/"+tenant+"/oauth2/v2.0/token"),
			Timeout:      getEnvDuration("GRAPH_TIMEOUT", 15*time.Second),
		},
		Storage: StorageConfig{
			LocalPath:    getEnv("STORAGE_LOCAL_PATH", "portal-local.db"),
			MaxAttempts:  getEnvInt("STORAGE_MAX_ATTEMPTS", 5),
			SyncCron:     getEnv("STORAGE_SYNC_CRON", "*/10 * * * *"),
			TemplateFile: getEnv("SETUP_TEMPLATE_FILE", ""),
		},
	}
}

// DSN строка подключения к Postgres в формате key=value.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// URL строка подключения в формате URL, нужна для миграций.
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// GraphEnabled сообщает, заданы ли учетные данные для Graph.
func (c GraphConfig) GraphEnabled() bool {
	return c.ClientID != "" && (c.ClientSecret != "" || c.RefreshToken != "")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
