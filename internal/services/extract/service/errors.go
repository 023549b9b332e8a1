package service

import perr "github.com/predator4hack/gitscout/internal/platform/errors"

var errNoProvider = perr.Unavailablef("no text generation provider configured")
