package config

import (
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/afero"
)

func overloadFs(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}

func overloadLookuper(overload envconfig.Lookuper) func() {
	lookuperRef := lookuper
	lookuper = overload
	return func() { lookuper = lookuperRef }
}

func overloadUserConfigDir(overload func() (string, error)) func() {
	userConfigDirRef := userConfigDir
	userConfigDir = overload
	return func() { userConfigDir = userConfigDirRef }
}
