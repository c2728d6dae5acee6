package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type CatalogConfig struct {
	Builtin bool   `yaml:"builtin"`
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the gatorctl configuration file.
type AppConfig struct {
	Log     LogConfig     `yaml:"log"`
	Catalog CatalogConfig `yaml:"catalog"`
	Mongo   MongoConfig   `yaml:"mongo"`
	HTTP    HTTPConfig    `yaml:"http"`
	Trade   TradeConfig   `yaml:"trade"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Log:     LogConfig{Level: "info", Encoding: "json"},
		Catalog: CatalogConfig{Builtin: true, Pattern: "**/*.yaml"},
		Mongo:   MongoConfig{Database: "gator", Collection: "params"},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Trade:   DefaultTradeConfig(),
	}
}

// LoadAppConfig reads path over the defaults. A missing file is not an
// error; the defaults plus environment overrides are used. A .env file in
// the working directory is loaded first when present.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, errors.Wrap(err, "load .env")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, errors.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}
	if v := os.Getenv("GATOR_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("GATOR_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := cfg.Trade.Validate(); err != nil {
		return cfg, errors.Wrap(err, "trade config")
	}
	return cfg, nil
}
