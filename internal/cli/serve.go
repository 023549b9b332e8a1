package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/predator4hack/gitscout/internal/modkit/repokit"
	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
	"github.com/predator4hack/gitscout/internal/platform/store"
	"github.com/predator4hack/gitscout/internal/services/api"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Serve(cmd.Context(), config.New())
		},
	}
}

// Serve opens the configured stores, migrates them, and serves the API until ctx ends
// a store that stops answering after migration panics before the listener starts
func Serve(ctx context.Context, root config.Conf) error {
	log := logger.Get()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	st, err := store.Open(ctx, store.ConfigFrom(root, "api"),
		store.WithLogger(*log),
		store.WithPingRetries(pgCfg.MayInt("PING_RETRIES", 20), pgCfg.MayDuration("PING_BASE", 150*time.Millisecond)),
	)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := api.Migrate(ctx, st); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	repokit.MustGuard(ctx, st)

	srv := phttp.NewServer(apiCfg)
	a := api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         log,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("closing text backends")
		}
	}()
	return srv.Run(ctx)
}
