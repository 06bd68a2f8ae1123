package config

import (
	"github.com/tauraamui/frameextract/internal/config"
	"github.com/tauraamui/frameextract/pkg/configdef"
)

type Destroyer interface {
	configdef.Destroyer
}

func DefaultDestroyer() Destroyer {
	return config.DefaultDestroyer()
}
