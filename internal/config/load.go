package config

import (
	"context"
	"errors"
	"os"

	"github.com/sethvargo/go-envconfig"
	"github.com/tauraamui/frameextract/pkg/configdef"
	"github.com/tauraamui/frameextract/pkg/log"
	"github.com/tauraamui/xerror"
)

// load layers the config file and then FRAMEEXTRACT_* environment
// variables over the built in defaults. A missing config file is fine.
func load() (configdef.Values, error) {
	values := defaultValues()

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	log.Debug("Resolved config file location: %s", configPath)
	file, err := readConfigFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug("No config file found at %s, using defaults", configPath)
	case err != nil:
		return configdef.Values{}, xerror.Errorf("unable to read config file %s: %w", configPath, err)
	default:
		if err := unmarshal(file, &values); err != nil {
			return configdef.Values{}, err
		}
	}

	if err := applyEnv(context.Background(), &values); err != nil {
		return configdef.Values{}, err
	}

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

func applyEnv(ctx context.Context, values *configdef.Values) error {
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   values,
		Lookuper: lookuper,
	})
	if err != nil {
		return xerror.Errorf("unable to apply environment overrides: %w", err)
	}
	return nil
}
