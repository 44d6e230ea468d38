package config

import "os"

type Config struct {
	DataDir  string
	ChartDir string
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDir:  os.Getenv("HEALTHPULSE_DATA_DIR"),
		ChartDir: os.Getenv("HEALTHPULSE_CHART_DIR"),
	}

	// Set defaults if not provided
	if cfg.DataDir == "" {
		cfg.DataDir = ".local"
	}
	if cfg.ChartDir == "" {
		cfg.ChartDir = "./data"
	}

	return cfg, nil
}
