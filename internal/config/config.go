// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

// Package config loads optional CLI defaults from a config.json file in the
// working directory. Flags always win over configured values.
package config

import (
	"encoding/json"
	"os"
)

// Config is the configuration file structure.
type Config struct {
	// InputPath and OutputPath are the default directories used when the
	// corresponding flags are not given.
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`

	// Workers is the default worker count; 0 means use the flag default.
	Workers int `json:"workers"`
}

const filename = "config.json"

// Load reads config.json if present. A missing file is not an error and
// yields the zero Config.
func Load() (*Config, error) {
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
