package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the server configuration. Every field has a working default so
// the server runs with no config file at all.
type Config struct {
	Addr    string `yaml:"addr"`
	DataDir string `yaml:"data_dir"`
	SiteDir string `yaml:"site_dir"`
}

func Default() Config {
	return Config{
		Addr:    ":8080",
		DataDir: "site/data",
		SiteDir: "site",
	}
}

// Load reads a yaml config file and applies environment overrides
// (DASH_ADDR, DASH_DATA_DIR, DASH_SITE_DIR). A missing file is fine;
// a malformed one is not.
func Load(path string) (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("DASH_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DASH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("DASH_SITE_DIR"); v != "" {
		cfg.SiteDir = v
	}
	return cfg, nil
}
