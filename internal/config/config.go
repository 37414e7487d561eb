// backend-go/internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Sheets   SheetsConfig
	Source   SourceConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Storage  StorageConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	DashboardPort  string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type SheetsConfig struct {
	SpreadsheetID       string
	OrdersSheet         string
	ItemsSheet          string
	CredentialsBase64   string
	CredentialsFile     string
	FetchTimeoutSeconds int
	CheckRevision       bool
}

// FetchTimeout bounds one upstream load of both sheets.
func (s SheetsConfig) FetchTimeout() time.Duration {
	if s.FetchTimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}

const (
	SourceSheets = "sheets"
	SourceXLSX   = "xlsx"
)

type SourceConfig struct {
	Kind         string
	WorkbookPath string
}

type CacheConfig struct {
	SnapshotTTLSeconds  int
	RetryBackoffSeconds int

	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	SummaryTTLSeconds int
}

func (c CacheConfig) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSeconds) * time.Second
}

func (c CacheConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffSeconds) * time.Second
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type StorageConfig struct {
	Enabled   bool
	Driver    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type AppConfig struct {
	PublicDir string
	ReportDir string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		instance = load(viper.GetViper())

		ensureDir(instance.App.ReportDir)
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "5001")
	v.SetDefault("DASHBOARD_PORT", "8050")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SHEETS_SPREADSHEET_ID", "1YAHO5rHhFVEReyAuxa7r2SDnoH7BnDfsmSEZ1LyjB8A")
	v.SetDefault("SHEETS_ORDERS_SHEET", "Customer Orders")
	v.SetDefault("SHEETS_ITEMS_SHEET", "Bakery Products Ordered ")
	v.SetDefault("SHEETS_CREDENTIALS_BASE64", "")
	v.SetDefault("SHEETS_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("SHEETS_FETCH_TIMEOUT_SECONDS", 20)
	v.SetDefault("SHEETS_CHECK_REVISION", false)
	v.SetDefault("SOURCE_KIND", SourceSheets)
	v.SetDefault("SOURCE_WORKBOOK_PATH", "./data/sales.xlsx")

	v.SetDefault("CACHE_SNAPSHOT_TTL_SECONDS", 300)
	v.SetDefault("CACHE_RETRY_BACKOFF_SECONDS", 30)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_SUMMARY_TTL_SECONDS", 60)

	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "sales")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_DRIVER", "minio")
	v.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "sales-reports")
	v.SetDefault("STORAGE_REGION", "")
	v.SetDefault("STORAGE_USE_SSL", false)

	v.SetDefault("APP_PUBLIC_DIR", "./public")
	v.SetDefault("APP_REPORT_DIR", "./reports")
}

func load(v *viper.Viper) *Config {
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			DashboardPort:  v.GetString("DASHBOARD_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:       v.GetString("SHEETS_SPREADSHEET_ID"),
			OrdersSheet:         v.GetString("SHEETS_ORDERS_SHEET"),
			ItemsSheet:          v.GetString("SHEETS_ITEMS_SHEET"),
			CredentialsBase64:   v.GetString("SHEETS_CREDENTIALS_BASE64"),
			CredentialsFile:     v.GetString("SHEETS_CREDENTIALS_FILE"),
			FetchTimeoutSeconds: v.GetInt("SHEETS_FETCH_TIMEOUT_SECONDS"),
			CheckRevision:       v.GetBool("SHEETS_CHECK_REVISION"),
		},
		Source: SourceConfig{
			Kind:         strings.ToLower(strings.TrimSpace(v.GetString("SOURCE_KIND"))),
			WorkbookPath: v.GetString("SOURCE_WORKBOOK_PATH"),
		},
		Cache: CacheConfig{
			SnapshotTTLSeconds:  v.GetInt("CACHE_SNAPSHOT_TTL_SECONDS"),
			RetryBackoffSeconds: v.GetInt("CACHE_RETRY_BACKOFF_SECONDS"),
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			SummaryTTLSeconds:   v.GetInt("CACHE_SUMMARY_TTL_SECONDS"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("DB_ENABLED"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Driver:    v.GetString("STORAGE_DRIVER"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		App: AppConfig{
			PublicDir: v.GetString("APP_PUBLIC_DIR"),
			ReportDir: v.GetString("APP_REPORT_DIR"),
		},
	}
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
