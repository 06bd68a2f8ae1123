package config

import (
	"github.com/tauraamui/frameextract/internal/config"
	"github.com/tauraamui/frameextract/pkg/configdef"
)

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}
