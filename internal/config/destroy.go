package config

import (
	"errors"
	"os"

	"github.com/tauraamui/frameextract/pkg/configdef"
	"github.com/tauraamui/xerror"
)

func destroy() (string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := fs.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path, configdef.ErrConfigNotFound
	}

	if err := fs.Remove(path); err != nil {
		return path, xerror.Errorf("unable to remove config file: %s: %w", path, err)
	}
	return path, nil
}
