package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/pkg/logger"
	"github.com/Astemirdum/pinjam-rt/pkg/postgres"
	"github.com/Astemirdum/pinjam-rt/pkg/redis"
	"github.com/Astemirdum/pinjam-rt/pkg/server"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   server.Config `yaml:"server" envconfig:"STATS_HTTP"`
	Kafka    kafka.Config  `yaml:"kafka" envconfig:"KAFKA"`
	Database postgres.DB   `yaml:"db" envconfig:"DB"`
	Redis    redis.Config  `yaml:"redis" envconfig:"REDIS"`
	CacheTTL time.Duration `yaml:"cacheTTL" envconfig:"STATS_CACHE_TTL" default:"30s"`
	Log      logger.Log    `yaml:"log" envconfig:"LOG"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
