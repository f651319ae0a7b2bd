package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPort           = "3001"
	DefaultAllowedOrigin  = "http://localhost:3000"
	DefaultProxyTarget    = "https://www.uniqlo.com"
	DefaultProxyUserAgent = "Mozilla/5.0"
	DefaultFetchTimeout   = 30 * time.Second
	DefaultLogLevel       = "info"
	DefaultMongoDatabase  = "uniqlo"
	DefaultAWSRegion      = "ap-northeast-1"
	DefaultChromeDriver   = "/usr/local/bin/chromedriver"
)

// DefaultFetchStrategies is the order fetch strategies are tried in
var DefaultFetchStrategies = []string{"http", "chromedp"}

var (
	Port             string
	AllowedOrigin    string
	ProxyTarget      string
	ProxyUserAgent   string
	FetchTimeout     time.Duration
	FetchStrategies  []string
	ChromeDriverPath string
	LogLevel         string
	LogJSON          bool
	MongoURI         string
	MongoDatabase    string
	AWSRegion        string
	AWSBucketName    string
)

func init() {
	setDefaults()
}

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using default values or system environment variables")
	}
	setDefaults()

	if v := os.Getenv("PORT"); v != "" {
		Port = v
	}
	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		AllowedOrigin = v
	}
	if v := os.Getenv("PROXY_TARGET"); v != "" {
		ProxyTarget = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("PROXY_USER_AGENT"); v != "" {
		ProxyUserAgent = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Warn().Str("value", v).Msg("Invalid FETCH_TIMEOUT, using default")
		} else {
			FetchTimeout = d
		}
	}
	if v := os.Getenv("FETCH_STRATEGIES"); v != "" {
		FetchStrategies = splitList(v)
	}
	if v := os.Getenv("CHROMEDRIVER_PATH"); v != "" {
		ChromeDriverPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		LogLevel = strings.ToLower(v)
	}
	LogJSON = os.Getenv("LOG_JSON") == "true"

	// Archiving is off unless a database is configured
	MongoURI = os.Getenv("MONGO_URI")
	if v := os.Getenv("DB_NAME"); v != "" {
		MongoDatabase = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		AWSRegion = v
	}
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
}

func setDefaults() {
	Port = DefaultPort
	AllowedOrigin = DefaultAllowedOrigin
	ProxyTarget = DefaultProxyTarget
	ProxyUserAgent = DefaultProxyUserAgent
	FetchTimeout = DefaultFetchTimeout
	FetchStrategies = append([]string(nil), DefaultFetchStrategies...)
	ChromeDriverPath = DefaultChromeDriver
	LogLevel = DefaultLogLevel
	LogJSON = false
	MongoURI = ""
	MongoDatabase = DefaultMongoDatabase
	AWSRegion = DefaultAWSRegion
	AWSBucketName = ""
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
