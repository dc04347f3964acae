package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT string
	// SiteURL - публичный адрес сайта, для canonical-ссылок и cache-warmer
	SiteURL      string
	CookieSecure bool
	CORSOrigins  []string
}

// WordPressConfig - headless CMS
type WordPressConfig struct {
	APIURL  string
	Timeout time.Duration
}

// CacheConfig - кэш ответов CMS (аналог ISR revalidate)
type CacheConfig struct {
	RedisEnabled bool
	RedisURL     string
	Revalidate   time.Duration
}

// DBconfig хранит конфигурацию для БД заявок. Пустой URL - заявки только логируются.
type DBconfig struct {
	URL string
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ. Пустой URL - события не публикуются.
type RabbitMQConfig struct {
	URL string
}

type ConsentConfig struct {
	Version     string
	BannerDelay time.Duration
	// SigningKey - ключ подписи cookie согласия. Пустой - cookie без подписи.
	SigningKey string
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	WordPress    WordPressConfig
	Cache        CacheConfig
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	Consent      ConsentConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: в контейнере переменные приходят из окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "versus-web")

	// Читаем конфигурацию для REST
	cfg.Rest.PORT = getEnvAsString("PORT", "3000")
	cfg.Rest.SiteURL = strings.TrimRight(getEnvAsString("SITE_URL", "http://localhost:"+cfg.Rest.PORT), "/")
	cfg.Rest.CookieSecure = getEnvAsBool("COOKIE_SECURE", strings.HasPrefix(cfg.Rest.SiteURL, "https://"))
	cfg.Rest.CORSOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{cfg.Rest.SiteURL})

	cfg.WordPress.APIURL = strings.TrimRight(os.Getenv("WORDPRESS_API_URL"), "/")
	if cfg.WordPress.APIURL == "" {
		return nil, fmt.Errorf("WORDPRESS_API_URL environment variable is required")
	}
	cfg.WordPress.Timeout = getEnvAsDuration("WORDPRESS_TIMEOUT", 8*time.Second)

	cfg.Cache.Revalidate = time.Duration(getEnvAsInt("REVALIDATE_SECONDS", 300)) * time.Second
	cfg.Cache.RedisURL = os.Getenv("REDIS_URL")
	cfg.Cache.RedisEnabled = getEnvAsBool("REDIS_ENABLED", cfg.Cache.RedisURL != "")
	if cfg.Cache.RedisEnabled && cfg.Cache.RedisURL == "" {
		log.Println("WARNING: REDIS_ENABLED is true, but REDIS_URL is not set. Disabling cache.")
		cfg.Cache.RedisEnabled = false
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")

	cfg.Consent.Version = getEnvAsString("CONSENT_VERSION", "1.0")
	cfg.Consent.BannerDelay = time.Duration(getEnvAsInt("CONSENT_BANNER_DELAY_MS", 1500)) * time.Millisecond
	cfg.Consent.SigningKey = os.Getenv("CONSENT_SIGNING_KEY")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = strings.EqualFold(getEnvAsString("LOG_FORMAT", "text"), "json")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию.
// Логирует предупреждение, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает формат time.ParseDuration ("8s", "1m30s")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList - список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
