package http

import "github.com/predator4hack/gitscout/internal/platform/config"

func configFor(prefix string) config.Conf { return config.New().Prefix(prefix) }
