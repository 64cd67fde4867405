package jobsite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	DatabaseName string
	SSLMode      string
	Path         string
}

type StorageConfig struct {
	Driver        string
	Bucket        string
	LocalDir      string
	PublicBaseURL string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	Region        string
}

type AppConfig struct {
	Mode           string
	ApiPort        string
	LogLevel       string
	AllowOrigins   []string
	UploadMaxBytes int64
	MainDatabase   DatabaseConfig
	JWTConfig      struct {
		Secret            string
		Expiration        int // in minutes
		RefreshExpiration int // in days
	}
	RedisConfig struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
		TTL      time.Duration
	}
	NatsURL string
	Storage StorageConfig
}

var config AppConfig

// InitConfig loads envfile and opens the shared clients. A missing envfile is
// tolerated so the process environment alone can configure the service.
func InitConfig(envfile string) {
	if err := godotenv.Load(envfile); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading %s file: %s", envfile, err)
	}
	config = LoadConfig()

	Logger = initLogger(config.LogLevel)
	DB = connectToDatabase(config.MainDatabase)
	if config.RedisConfig.Enabled {
		Redis = connectToRedis(config.RedisConfig.Host, config.RedisConfig.Port, config.RedisConfig.Password, config.RedisConfig.DB)
	}
	if config.NatsURL != "" {
		NATS = connectToNats(config.NatsURL)
	}
}

// LoadConfig reads AppConfig from the process environment without opening
// any connection.
func LoadConfig() AppConfig {
	cfg := AppConfig{
		Mode:           GetEnv("RUN_MODE", "prod"),
		ApiPort:        getEnvOrPanic("API_PORT"),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		AllowOrigins:   GetListEnv("CORS_ALLOW_ORIGINS", "*"),
		UploadMaxBytes: int64(getIntEnvOrDefault("UPLOAD_MAX_BYTES", 20<<20)),
		NatsURL:        GetEnv("NATS_URL", ""),
	}

	cfg.MainDatabase = DatabaseConfig{Driver: GetEnv("DB_DRIVER", "postgres")}
	if cfg.MainDatabase.Driver == "sqlite" {
		cfg.MainDatabase.Path = GetEnv("DB_PATH", "jobsite.db")
	} else {
		cfg.MainDatabase.Host = getEnvOrPanic("DB_HOSTNAME")
		cfg.MainDatabase.Port = getEnvOrPanic("DB_PORT")
		cfg.MainDatabase.User = getEnvOrPanic("DB_USERNAME")
		cfg.MainDatabase.Password = getEnvOrPanic("DB_PASSWORD")
		cfg.MainDatabase.DatabaseName = getEnvOrPanic("DB_NAME")
		cfg.MainDatabase.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	}

	cfg.JWTConfig.Secret = getEnvOrPanic("JWT_SECRET")
	cfg.JWTConfig.Expiration = getIntEnvOrDefault("JWT_EXPIRATION_MINUTES", 60)
	cfg.JWTConfig.RefreshExpiration = getIntEnvOrDefault("JWT_REFRESH_EXPIRATION_DAYS", 30)

	cfg.RedisConfig.Enabled = getBoolEnvOrDefault("REDIS_ENABLED", false)
	cfg.RedisConfig.Host = GetEnv("REDIS_HOST", "localhost")
	cfg.RedisConfig.Port = GetEnv("REDIS_PORT", "6379")
	cfg.RedisConfig.Password = GetEnv("REDIS_PASSWORD", "")
	cfg.RedisConfig.DB = getIntEnvOrDefault("REDIS_DB", 0)
	cfg.RedisConfig.TTL = time.Duration(getIntEnvOrDefault("VIEW_CACHE_TTL_SECONDS", 300)) * time.Second

	cfg.Storage = StorageConfig{
		Driver:        GetEnv("STORAGE_DRIVER", "local"),
		Bucket:        GetEnv("STORAGE_BUCKET", "job-documents"),
		LocalDir:      GetEnv("STORAGE_LOCAL_DIR", "storage"),
		PublicBaseURL: strings.TrimSuffix(GetEnv("STORAGE_PUBLIC_BASE_URL", ""), "/"),
		Endpoint:      GetEnv("S3_ENDPOINT", ""),
		AccessKey:     GetEnv("S3_ACCESS_KEY", ""),
		SecretKey:     GetEnv("S3_SECRET_KEY", ""),
		UseSSL:        getBoolEnvOrDefault("S3_USE_SSL", true),
		Region:        GetEnv("S3_REGION", ""),
	}
	if cfg.Storage.Driver == "s3" && cfg.Storage.Endpoint == "" {
		log.Fatal("S3_ENDPOINT must be set when STORAGE_DRIVER=s3")
	}

	return cfg
}

func GetConfig() AppConfig {
	return config
}

func getEnvOrPanic(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s must be set", key)
	}
	return value
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func getBoolEnvOrDefault(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetListEnv reads a comma separated variable, dropping blank entries.
func GetListEnv(key string, defaultValue string) []string {
	return splitList(GetEnv(key, defaultValue))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// OpenDatabase opens a gorm connection for the configured driver.
func OpenDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.DatabaseName, cfg.Port, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DatabaseName)
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	return gorm.Open(dialector,
		&gorm.Config{
			Logger: logger.New(
				log.New(os.Stdout, "\r\n", log.LstdFlags),
				logger.Config{
					SlowThreshold: 0,
					LogLevel:      logger.Error,
				},
			),
			TranslateError: true,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
			NamingStrategy: schema.NamingStrategy{
				SingularTable: false,
			}})
}

func connectToDatabase(cfg DatabaseConfig) *gorm.DB {
	var err error
	var db *gorm.DB
	var conn *sql.DB

	if db, err = OpenDatabase(cfg); err != nil {
		panic(err)
	}
	if conn, err = db.DB(); err != nil {
		panic(err)
	}
	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxLifetime(time.Hour)
	return db
}

func initLogger(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
		NoColor:    false,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("  %s  ", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Caller().Logger()
}

func connectToRedis(host string, port string, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	return client
}

func connectToNats(url string) *nats.Conn {
	nc, err := nats.Connect(url, nats.Name("jobsite-api"), nats.MaxReconnects(-1))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to NATS: %v", err))
	}
	return nc
}
