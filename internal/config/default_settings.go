package config

import "github.com/tauraamui/frameextract/pkg/configdef"

type defaultSettingKey uint

const (
	LOGLEVEL       defaultSettingKey = 0x0
	BACKEND        defaultSettingKey = 0x1
	MODE           defaultSettingKey = 0x2
	NUMFRAMES      defaultSettingKey = 0x3
	SCENETHRESHOLD defaultSettingKey = 0x4
)

var defaultSettings = map[defaultSettingKey]interface{}{
	LOGLEVEL:       "warn",
	BACKEND:        "opencv",
	MODE:           "keyframes",
	NUMFRAMES:      5,
	SCENETHRESHOLD: 30.0,
}

func defaultValues() configdef.Values {
	return configdef.Values{
		LogLevel: defaultSettings[LOGLEVEL].(string),
		Backend:  defaultSettings[BACKEND].(string),
		Extraction: configdef.Extraction{
			Mode:      defaultSettings[MODE].(string),
			NumFrames: defaultSettings[NUMFRAMES].(int),
			Threshold: defaultSettings[SCENETHRESHOLD].(float64),
		},
	}
}
