package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Scanner  ScannerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ScannerConfig QR 掃描相關設定：有效時間窗、確認視窗自動關閉延遲、對外服務位址
type ScannerConfig struct {
	ValidityWindow  time.Duration // QR 產生後的有效時間（預設 5 分鐘）
	AutoCloseDelay  time.Duration // 驗證成功後確認視窗自動關閉延遲（預設 4 秒）
	ValidateBaseURL string        // gate 端呼叫的驗證服務 base URL
	PublicBaseURL   string        // 簽發 QR payload 時使用的對外 URL
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時直接使用環境變數（同 godotenv 慣例）
	_ = godotenv.Load()

	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Scanner:  GetScannerConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Scanner: ScannerConfig{
			ValidityWindow:  5 * time.Minute,
			AutoCloseDelay:  4 * time.Second,
			ValidateBaseURL: "http://localhost:8080",
			PublicBaseURL:   "http://localhost:8080",
		},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetScannerConfig() ScannerConfig {
	return ScannerConfig{
		ValidityWindow:  getEnvDuration("QR_VALIDITY_WINDOW", 5*time.Minute),
		AutoCloseDelay:  getEnvDuration("CONFIRM_AUTO_CLOSE", 4*time.Second),
		ValidateBaseURL: getEnv("VALIDATE_BASE_URL", "http://localhost:8080"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
