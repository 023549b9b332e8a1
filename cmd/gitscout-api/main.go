// @title         gitscout API
// @version       1.0
// @description   Find GitHub engineers matching a job description.
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/predator4hack/gitscout/internal/cli"
	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, config.New()); err != nil {
		l.Panic().Err(err).Msg("api stopped")
	}
}
