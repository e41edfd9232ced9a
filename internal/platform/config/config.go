package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort     string
	FrontendURL string
	JWTKey      []byte
	JWTExp      time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GitHubClientID     string
	GitHubClientSecret string
	GitHubToken        string
	GitHubAPIBase      string
	GitHubAuthorizeURL string
	GitHubTokenURL     string
	GitHubUserAPI      string
	GitHubUserAgent    string
	GitHubAPIVersion   string
	GitHubHTTPTimeout  time.Duration
	RunListPageSize    int

	PointsPerLevel   int
	LeaderboardLimit int

	SubmitLockTTL      time.Duration
	SubmitLockWait     time.Duration
	EnableTestIdentity bool

	LevelLinks map[int]string
}

// Assignment invite links handed out per level. Level 0 is the demo level.
var defaultLevelLinks = map[int]string{
	0: "https://classroom.github.com/a/-mDK6v1a",
	1: "https://classroom.github.com/a/gF1BxiUa",
	2: "https://classroom.github.com/a/qtiNJt92",
	3: "https://classroom.github.com/a/IkeIkRUT",
	4: "https://classroom.github.com/a/v-vPXsGd",
	5: "https://classroom.github.com/a/TA8NqnQY",
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:     getEnv("API_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTKey:      []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:      time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "osday_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		GitHubToken:        getEnv("GITHUB_TOKEN", ""),
		GitHubAPIBase:      getEnv("GITHUB_API_BASE", "https://api.github.com"),
		GitHubAuthorizeURL: getEnv("GITHUB_OAUTH_URL", "https://github.com/login/oauth/authorize"),
		GitHubTokenURL:     getEnv("GITHUB_TOKEN_URL", "https://github.com/login/oauth/access_token"),
		GitHubUserAPI:      getEnv("GITHUB_USER_API", "https://api.github.com/user"),
		GitHubUserAgent:    getEnv("GITHUB_USER_AGENT", "open-source-day-backend"),
		GitHubAPIVersion:   getEnv("GITHUB_API_VERSION", "application/vnd.github+json"),
		GitHubHTTPTimeout:  time.Duration(getEnvAsInt("GITHUB_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		RunListPageSize:    getEnvAsInt("GITHUB_RUN_LIST_PAGE_SIZE", 5),

		PointsPerLevel:   getEnvAsInt("POINTS_PER_LEVEL", 100),
		LeaderboardLimit: getEnvAsInt("LEADERBOARD_LIMIT", 100),

		SubmitLockTTL:      time.Duration(getEnvAsInt("SUBMIT_LOCK_TTL_SECONDS", 60)) * time.Second,
		SubmitLockWait:     time.Duration(getEnvAsInt("SUBMIT_LOCK_WAIT_SECONDS", 10)) * time.Second,
		EnableTestIdentity: getEnvAsBool("ENABLE_TEST_IDENTITY", true),

		LevelLinks: defaultLevelLinks,
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
