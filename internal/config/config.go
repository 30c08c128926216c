package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"local"`
	HTTPServer HTTPServer       `yaml:"http_server"`
	Storage    StorageConfig    `yaml:"storage"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Clickhouse ClickhouseConfig `yaml:"clickhouse"`
	Referral   ReferralConfig   `yaml:"referral"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type StorageConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"dbname" env-default:"referral"`
	SslMode  string `yaml:"sslmode" env-default:"disable"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env-default:"0"`
	CodeTTL  time.Duration `yaml:"code_ttl" env-default:"1h"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	TopicUser  string   `yaml:"topic_user" env-default:"user-events"`
	TopicClick string   `yaml:"topic_click" env-default:"click-events"`
	GroupID    string   `yaml:"group_id" env-default:"referral-analytics"`
}

type ClickhouseConfig struct {
	Addr     string `yaml:"addr" env-default:"localhost:8123"`
	Database string `yaml:"database" env-default:"default"`
	Username string `yaml:"username" env-default:"default"`
	Password string `yaml:"password" env:"CLICKHOUSE_PASSWORD"`
}

// ReferralConfig parameterizes what the deployment variants used to
// hard-code: code length, link template and the unknown-code policy.
type ReferralConfig struct {
	CodeLength int    `yaml:"code_length" env:"AFF_LEN" env-default:"9"`
	LinkStyle  string `yaml:"link_style" env-default:"path"`
	LinkBase   string `yaml:"link_base" env-default:"http://localhost:8080"`
	SignupPath string `yaml:"signup_path" env-default:""`
	// Destination is where /r/{code} sends the visitor after recording.
	Destination string `yaml:"destination" env-default:"http://localhost:3000"`
	// UnknownCodePolicy is "reject" (404, nothing recorded) or
	// "redirect" (302 to Destination, nothing recorded).
	UnknownCodePolicy string `yaml:"unknown_code_policy" env-default:"reject"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yaml"
	}

	return MustLoadByPath(configPath)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}
