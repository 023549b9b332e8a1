package modkit

import (
	"time"

	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	"github.com/predator4hack/gitscout/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// PG and CH are nil when the backend is not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  store.TxRunner
	CH  store.Clickhouse
	Now func() time.Time
}

// DepsFrom builds Deps over an opened store; a nil store gives a storage free Deps
func DepsFrom(cfg config.Conf, st *store.Store, log logger.Logger) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG, d.CH = st.PG, st.CH
	}
	return d
}

// Clock returns Now, defaulting to time.Now
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

// HasPG reports whether a postgres runner is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// HasCH reports whether a clickhouse client is wired
func (d Deps) HasCH() bool { return d.CH != nil }
