package main

import (
	"errors"
	stdLog "log"
	"os"

	"github.com/Astemirdum/pinjam-rt/stats/app"
	"github.com/Astemirdum/pinjam-rt/stats/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(config.WithLogLevel(zapcore.DebugLevel))

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal(err)
	}
}
