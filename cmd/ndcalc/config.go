package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ndcalc-io/ndcalc"
	"github.com/ndcalc-io/ndcalc/findiff"
	"github.com/ndcalc-io/ndcalc/parser"
)

// configFile is looked up in the working directory. All fields are
// optional; flags override whatever it sets.
const configFile = "ndcalc.toml"

type config struct {
	Mode     string  `toml:"mode"`
	Epsilon  float64 `toml:"epsilon"`
	MaxDepth int     `toml:"max_depth"`
}

func defaultConfig() config {
	return config{
		Mode:     ndcalc.Auto.String(),
		Epsilon:  findiff.DefaultEpsilon,
		MaxDepth: parser.DefaultMaxDepth,
	}
}

func loadConfig() (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if _, err := ndcalc.ParseMode(cfg.Mode); err != nil {
		return cfg, err
	}
	log.Debug().Str("file", configFile).Msg("loaded config")
	return cfg, nil
}
