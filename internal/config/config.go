package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageBackendRedis    = "redis"
	StorageBackendPostgres = "postgres"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Storage struct {
		Backend   string `mapstructure:"backend"`
		Namespace string `mapstructure:"namespace"`
	} `mapstructure:"storage"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		AdminSecret string        `mapstructure:"admin_secret"`
		JWTSecret   string        `mapstructure:"jwt_secret"`
		SessionTTL  time.Duration `mapstructure:"session_ttl"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
		Folder    string `mapstructure:"folder"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Site struct {
		Title   string `mapstructure:"title"`
		BaseURL string `mapstructure:"base_url"`
		Author  string `mapstructure:"author"`
	} `mapstructure:"site"`
}

// LoadConfig reads config.yaml from path (when present), then .env, then the
// process environment. Later sources win.
func LoadConfig(path string) (cfg Config, err error) {
	if path == "" {
		path = "."
	}

	if err = godotenv.Load(path + "/.env"); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.namespace", "STORAGE_NAMESPACE")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.admin_secret", "ADMIN_SECRET")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.session_ttl", "SESSION_TTL")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("cloudinary.folder", "CLOUDINARY_FOLDER")

	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")
	v.BindEnv("site.title", "SITE_TITLE")
	v.BindEnv("site.base_url", "SITE_BASE_URL")
	v.BindEnv("site.author", "SITE_AUTHOR")

	// Unmarshal does not split env strings for slices.
	if raw := v.GetString("kafka.brokers"); raw != "" && strings.Contains(raw, ",") {
		v.Set("kafka.brokers", strings.Split(raw, ","))
	}

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("storage.backend", StorageBackendRedis)
	v.SetDefault("storage.namespace", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.group_id", "content-snapshot-group")
	v.SetDefault("auth.session_ttl", 12*time.Hour)
	v.SetDefault("cloudinary.folder", "portfolio/snapshots")
	v.SetDefault("site.title", "Portfolio")
	v.SetDefault("site.base_url", "http://localhost:3000")
}
