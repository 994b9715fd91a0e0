package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"local"`
	UploadDir   string     `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"./uploads"`
	SeedDemo    bool       `yaml:"seed_demo" env:"SEED_DEMO" env-default:"false"`
	CORSOrigins []string   `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*"`
	HTTPServer  HTTPServer `yaml:"http_server"`
	PortalDB    PortalDB   `yaml:"portal_db"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_SERVER_ADDRESS" env-default:"0.0.0.0:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"120s"`
}

type PortalDB struct {
	DSN string `yaml:"dsn" env:"PORTAL_DB_DSN"`
}

func MustLoad() *Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var config Config
	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		log.Fatalf("cannot read config %s: %v", configPath, err)
	}
	return &config
}
