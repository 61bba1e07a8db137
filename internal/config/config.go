package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	DBDSN     string `envconfig:"DB_DSN" default:"shopfront.db"`
	RedisAddr string `envconfig:"REDIS_ADDR" default:""` // empty disables the cache
	LogFile   string `envconfig:"LOG_FILE" default:""`
	SeedDemo  bool   `envconfig:"SEED_DEMO" default:"true"`
}

func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not load .env: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s REDIS_ADDR=%s LOG_FILE=%s SEED_DEMO=%v",
		cfg.Port, cfg.DBDSN, cfg.RedisAddr, cfg.LogFile, cfg.SeedDemo)
	return cfg
}
