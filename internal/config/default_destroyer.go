package config

import (
	"github.com/tauraamui/frameextract/pkg/configdef"
	"github.com/tauraamui/frameextract/pkg/log"
)

func DefaultDestroyer() configdef.Destroyer {
	return defaultDestroyer{}
}

type defaultDestroyer struct{}

func (d defaultDestroyer) Destroy() error {
	path, err := destroy()
	if err != nil {
		return err
	}
	log.Info("Removed config at %s", path)
	return nil
}
