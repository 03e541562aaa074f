package config

import (
	"errors"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"8080"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	SMTP struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"25"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
	} `yaml:"s3"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"2"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"4"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED" env-default:"true"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// Decode reads the app configuration from config.yml, falling back to
// environment variables when the file doesn't exist. A .env file, if present,
// is loaded into the environment first.
func Decode() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := cleanenv.ReadConfig("config.yml", &cfg)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		err = cleanenv.ReadEnv(&cfg)
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
