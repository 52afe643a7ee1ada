package util

import (
	"github.com/spf13/viper"
)

// Config holds the demo CLI's parser defaults, overridable per-invocation by
// flags in cmd/bbcodedemo. It is the config-file counterpart of
// bbcode.Options: viper loads it from an optional dotenv-style file, and the
// CLI layer translates it into bbcode.Option values.
type Config struct {
	Environment      string `mapstructure:"ENVIRONMENT"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	CloseOpenTags    bool   `mapstructure:"CLOSE_OPEN_TAGS"`
	StrictAttributes bool   `mapstructure:"STRICT_ATTRIBUTES"`
	DirectAttributes bool   `mapstructure:"DIRECT_ATTRIBUTES"`
	Linebreaks       bool   `mapstructure:"LINEBREAKS"`
	StripLinebreaks  bool   `mapstructure:"STRIP_LINEBREAKS"`
}

// LoadConfig reads "app.env" from path, if present, falling back to the
// defaults below when no such file exists — the demo CLI must run with no
// config file at all.
func LoadConfig(path string) (config Config, err error) {
	config = Config{
		Environment:      "development",
		LogLevel:         "info",
		StrictAttributes: true,
		DirectAttributes: true,
		Linebreaks:       true,
		StripLinebreaks:  true,
	}

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return config, nil
		}
		return config, err
	}

	err = viper.Unmarshal(&config)
	return
}
