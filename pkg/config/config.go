package config

import (
	"github.com/tauraamui/frameextract/internal/config"
	"github.com/tauraamui/frameextract/pkg/configdef"
)

type CreateResolver interface {
	configdef.CreateResolver
}

func DefaultCreateResolver() CreateResolver {
	return config.DefaultCreateResolver()
}
