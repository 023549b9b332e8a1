package store

import "github.com/predator4hack/gitscout/internal/platform/config"

func configRoot(prefix string) config.Conf { return config.New().Prefix(prefix) }
