package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/eddieowens/axon"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const ConfigKey = "Config"

const ConfigPathEnv = "ROUTEMAP_CONFIG_PATH"

type Config struct {
	Server  Server  `mapstructure:"server" yaml:"server"`
	Log     Log     `mapstructure:"log" yaml:"log"`
	Metrics Metrics `mapstructure:"metrics" yaml:"metrics"`
}

type Log struct {
	Level      string `mapstructure:"level" yaml:"level"`
	TimeFormat string `mapstructure:"timeformat" yaml:"timeformat"`
}

type Server struct {
	Port      uint16 `mapstructure:"port" yaml:"port"`
	BodyLimit string `mapstructure:"bodylimit" yaml:"bodylimit"`
	Cors      Cors   `mapstructure:"cors" yaml:"cors"`
}

type Cors struct {
	AllowOrigins []string `mapstructure:"alloworigins" yaml:"alloworigins"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: Server{
			Port:      8080,
			BodyLimit: "10M",
			Cors: Cors{
				AllowOrigins: []string{
					"http://localhost:5173",
					"http://127.0.0.1:5173",
					"http://localhost:5174",
					"http://127.0.0.1:5174",
					"http://localhost:5175",
					"http://127.0.0.1:5175",
				},
			},
		},
		Log: Log{
			Level:      "info",
			TimeFormat: time.RFC3339,
		},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load layers the defaults, the optional file at path and ROUTEMAP_*
// environment variables, in that order.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("routemap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(false)

	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.WithField("path", path).WithError(err).Debug("Failed to load config file")
			} else {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}

func configFactory(_ axon.Injector, _ axon.Args) axon.Instance {
	config, err := Load(os.Getenv(ConfigPathEnv))
	if err != nil {
		log.Fatal(err)
	}
	return axon.Any(config)
}
