package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreOracle = "oracle"
)

type Config struct {
	Env       string
	Server    ServerConfig
	Logger    LoggerConfig
	Upload    UploadConfig
	QuizGen   QuizGenConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	Archive   ArchiveConfig
	CacheTTLs CacheTTLConfig
	Tracing   TracingConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// BodyLimit caps the raw request body; it must leave room above Upload.MaxSizeBytes
	// for multipart framing so oversized files reach the upload validator.
	BodyLimit int
}

type LoggerConfig struct {
	Level string
	Env   string
	// File enables a rotating JSON log file next to stdout when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type UploadConfig struct {
	MaxSizeBytes      int64
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type QuizGenConfig struct {
	Provider     string
	OpenAIAPIKey string
	Model        string
	LLMServer    string
	Temperature  float64
	MaxTextChars int
}

type StoreConfig struct {
	Driver string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CacheTTLConfig struct {
	Result string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

type MetricsConfig struct {
	Enabled bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.body_limit_mb", 32)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 30)
	v.SetDefault("upload.max_size_bytes", 10*1024*1024)
	v.SetDefault("upload.rate_limit.requests", 10)
	v.SetDefault("upload.rate_limit.window", "1m")
	v.SetDefault("quizgen.provider", ProviderOpenAI)
	v.SetDefault("quizgen.model", "gpt-4o-mini")
	v.SetDefault("quizgen.temperature", 0.7)
	v.SetDefault("quizgen.max_text_chars", 4000)
	v.SetDefault("llm.server", "http://localhost:11434")
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("archive.bucket", "quiz-documents")
	v.SetDefault("cache_ttls.result", "24h")
	v.SetDefault("tracing.service_name", "quiz-forge")
	v.SetDefault("metrics.enabled", true)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	rateWindow, err := time.ParseDuration(v.GetString("upload.rate_limit.window"))
	if err != nil {
		return nil, fmt.Errorf("invalid upload.rate_limit.window: %w", err)
	}

	config := &Config{
		Env: v.GetString("env"),
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		Logger: LoggerConfig{
			Level:      v.GetString("logger.level"),
			Env:        v.GetString("env"),
			File:       v.GetString("logger.file"),
			MaxSizeMB:  v.GetInt("logger.max_size_mb"),
			MaxBackups: v.GetInt("logger.max_backups"),
			MaxAgeDays: v.GetInt("logger.max_age_days"),
		},
		Upload: UploadConfig{
			MaxSizeBytes:      v.GetInt64("upload.max_size_bytes"),
			RateLimitRequests: v.GetInt("upload.rate_limit.requests"),
			RateLimitWindow:   rateWindow,
		},
		QuizGen: QuizGenConfig{
			Provider:     strings.ToLower(v.GetString("quizgen.provider")),
			OpenAIAPIKey: v.GetString("openai_api_key"),
			Model:        v.GetString("quizgen.model"),
			LLMServer:    v.GetString("llm.server"),
			Temperature:  v.GetFloat64("quizgen.temperature"),
			MaxTextChars: v.GetInt("quizgen.max_text_chars"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("store.driver")),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Archive: ArchiveConfig{
			Enabled:   v.GetBool("archive.enabled"),
			Endpoint:  v.GetString("archive.endpoint"),
			AccessKey: v.GetString("archive.access_key"),
			SecretKey: v.GetString("archive.secret_key"),
			Bucket:    v.GetString("archive.bucket"),
			UseSSL:    v.GetBool("archive.use_ssl"),
		},
		CacheTTLs: CacheTTLConfig{
			Result: v.GetString("cache_ttls.result"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			ServiceName: v.GetString("tracing.service_name"),
			Endpoint:    v.GetString("tracing.endpoint"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
		},
	}

	// Override with environment variables if set
	if useMock := os.Getenv("USE_MOCK_AI"); strings.EqualFold(useMock, "true") {
		config.QuizGen.Provider = ProviderMock
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.QuizGen.OpenAIAPIKey = openAIKey
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.QuizGen.LLMServer = llmServer
	}
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		config.Store.Driver = strings.ToLower(driver)
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		config.Archive.Endpoint = endpoint
	}
	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		config.Archive.AccessKey = accessKey
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		config.Archive.SecretKey = secretKey
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.QuizGen.Provider {
	case ProviderMock, ProviderOllama:
	case ProviderOpenAI:
		if c.QuizGen.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when quizgen.provider is %q (set USE_MOCK_AI=true for offline mode)", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unsupported quizgen.provider: %q", c.QuizGen.Provider)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for store driver %q", StoreRedis)
		}
	case StoreOracle:
		if c.DB.Host == "" || c.DB.DBName == "" {
			return fmt.Errorf("db.host and db.name are required for store driver %q", StoreOracle)
		}
	default:
		return fmt.Errorf("unsupported store.driver: %q", c.Store.Driver)
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.max_size_bytes must be positive")
	}
	if c.Archive.Enabled && c.Archive.Endpoint == "" {
		return fmt.Errorf("archive.endpoint is required when archive.enabled is true")
	}
	return nil
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}

// ParseTTLStringOrDefault parses a duration string, falling back to defaultTTL when it is empty or invalid.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(ttlString)
	if err != nil || d <= 0 {
		return defaultTTL
	}
	return d
}
