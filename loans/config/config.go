package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/pkg/logger"
	"github.com/Astemirdum/pinjam-rt/pkg/server"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server server.Config `yaml:"server" envconfig:"LOANS_HTTP"`
	Kafka  kafka.Config  `yaml:"kafka" envconfig:"KAFKA"`
	Log    logger.Log    `yaml:"log" envconfig:"LOG"`
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
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
