package store

import (
	"time"

	"github.com/predator4hack/gitscout/internal/platform/config"
)

// Config selects and tunes the backends
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration

	// reported to the server as client info
	ClientName string
	ClientTag  string
}

// ConfigFrom reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* from root
//
// A backend is enabled when its DBURL is set. role tags the clickhouse client, e.g. "api" or "cli".
func ConfigFrom(root config.Conf, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")
	pgURL := pg.MayString("DBURL", "")
	chURL := ch.MayString("DBURL", "")
	return Config{
		PG: PGConfig{
			Enabled:     pgURL != "",
			URL:         pgURL,
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		},
		CH: CHConfig{
			Enabled:     chURL != "",
			URL:         chURL,
			DialTimeout: ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
			ClientName:  "gitscout",
			ClientTag:   role,
		},
	}
}
