package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AuthConf struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	OwnerPass string `mapstructure:"owner_pass"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConf struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type AIConf struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	Model        string `mapstructure:"model"`
}

type UploadConf struct {
	Dir string `mapstructure:"dir"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongo"`
	Auth      AuthConf      `mapstructure:"auth"`
	Redis     RedisConf     `mapstructure:"redis"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`
	AI        AIConf        `mapstructure:"ai"`
	Upload    UploadConf    `mapstructure:"upload"`

	// derived
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads the optional YAML config file, then applies environment
// overrides and defaults. Only MONGO_URI is strictly required.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", 8001)
	v.SetDefault("app.read_timeout_seconds", 30)
	v.SetDefault("app.write_timeout_seconds", 30)
	v.SetDefault("mongo.database", "portfolio")
	v.SetDefault("auth.jwt_secret", "portfolio-secret-key")
	v.SetDefault("auth.owner_pass", "shipfast")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window_seconds", 60)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if val := os.Getenv(env); val != "" {
			apply(val)
		}
	}
	override("APP_ENV", func(val string) { cfg.App.Env = val })
	override("APP_PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.App.Port = n
		}
	})
	override("MONGO_URI", func(val string) { cfg.Mongo.URI = val })
	override("MONGO_URL", func(val string) { cfg.Mongo.URI = val })
	override("DB_NAME", func(val string) { cfg.Mongo.Database = val })
	override("JWT_SECRET", func(val string) { cfg.Auth.JWTSecret = val })
	override("OWNER_PASS", func(val string) { cfg.Auth.OwnerPass = val })
	override("GEMINI_API_KEY", func(val string) { cfg.AI.GeminiAPIKey = val })
	override("UPLOAD_DIR", func(val string) { cfg.Upload.Dir = val })
	override("REDIS_ADDR", func(val string) { cfg.Redis.Addr = val })
	override("REDIS_PASSWORD", func(val string) { cfg.Redis.Password = val })

	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	return &cfg, nil
}
