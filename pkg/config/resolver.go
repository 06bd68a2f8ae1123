package config

import (
	"github.com/tauraamui/frameextract/internal/config"
	"github.com/tauraamui/frameextract/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}
